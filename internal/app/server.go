package app

import (
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

type guildStatus struct {
	GuildID   string
	ChannelID string
	Prompt    string
	Entries   int
	EndsAt    string
	Running   bool
}

func (a *App) guildStatuses() []guildStatus {
	var statuses []guildStatus
	for _, guildID := range a.registry.GuildIDs() {
		tracking, _ := a.registry.Get(guildID)

		status := guildStatus{GuildID: guildID, ChannelID: tracking.ChannelID}
		if tracking.Current.Running() {
			status.Running = true
			status.Entries = tracking.Current.EntryCount()
			status.Prompt, _ = tracking.CurrentPrompt()
			if end, ok := tracking.ContestEnd(); ok {
				status.EndsAt = end.Format(time.RFC1123)
			}
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// StartWebServer serves a read-only status page for the tracked guilds.
func (a *App) StartWebServer(sessionKey, adminKey string) {
	tmpl, err := template.ParseFiles("templates/index.html")
	if err != nil {
		log.Fatal(err)
	}

	cookieStore := sessions.NewCookieStore([]byte(sessionKey))

	mux := http.NewServeMux()

	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		session, err := cookieStore.Get(r, "ca_session")
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		if session.Values["authed"] != true {
			http.Error(w, "Unauthorized. Visit /login?key=<admin key>", http.StatusUnauthorized)
			return
		}

		tmpl.Execute(w, a.guildStatuses())
	})

	mux.HandleFunc("GET /login", func(w http.ResponseWriter, r *http.Request) {
		session, err := cookieStore.Get(r, "ca_session")
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		if adminKey == "" || r.URL.Query().Get("key") != adminKey {
			http.Error(w, "Invalid key", http.StatusForbidden)
			return
		}

		session.Values["authed"] = true
		err = session.Save(r, w)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	})

	go func() {
		log.Print("Server is listening on port 3000")
		log.Print(http.ListenAndServe(":3000", mux))
	}()
}
