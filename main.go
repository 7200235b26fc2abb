package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/antlu/contest-assistant/internal/app"
	"github.com/antlu/contest-assistant/internal/contest"
	"github.com/antlu/contest-assistant/internal/gateway"
	"github.com/antlu/contest-assistant/internal/secrets"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}

	dbPath := os.Getenv("CA_DB_PATH")
	if dbPath == "" {
		dbPath = app.DefaultDBPath
	}
	db := app.OpenDB(dbPath)
	defer db.Close()

	cipher := secrets.Cipher(os.Getenv("CA_SECRET_KEY"))
	credentials := app.NewCredentialStore(db, cipher)

	token, err := credentials.Get("gateway_token")
	if err != nil {
		log.Fatal(err)
	}
	if token == "" {
		token = os.Getenv("CA_BOT_TOKEN")
		if token == "" {
			log.Fatal("CA_BOT_TOKEN is not set")
		}
		if err := credentials.Put("gateway_token", token); err != nil {
			log.Fatal(err)
		}
	}

	registry := contest.NewRegistry(db)
	if err := registry.Hydrate(); err != nil {
		log.Fatal(err)
	}

	client := gateway.NewClient(os.Getenv("CA_GATEWAY_URL"), token)
	bot, err := client.Identity()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Connected as %s", bot.Name)

	a := app.New(registry, client, bot.ID)

	tickSeconds := 60
	if value := os.Getenv("CA_TICK_SECONDS"); value != "" {
		tickSeconds, err = strconv.Atoi(value)
		if err != nil {
			log.Fatal("Invalid CA_TICK_SECONDS value")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go a.RunScheduler(ctx, time.Duration(tickSeconds)*time.Second)

	a.StartWebServer(os.Getenv("CA_SESSION_KEY"), os.Getenv("CA_ADMIN_KEY"))

	err = gateway.StartSocket(os.Getenv("CA_GATEWAY_WS_URL"), token, a, gateway.ReconnParams{})
	if err != nil {
		log.Fatal(err)
	}

	<-ctx.Done()
	log.Print("Shutting down")
}
