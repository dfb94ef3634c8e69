package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/mbolis/crew-survey/log"
)

const LivenessBody = "✅ Bot is running"

// Wire serves the liveness endpoint polled by the uptime monitor. It knows nothing
// about surveys in progress.
func Wire() http.Handler {
	root := chi.NewRouter()
	root.Use(
		middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: log.Logger, NoColor: true}),
		middleware.Recoverer,
	)

	root.Get("/", Liveness)

	return root
}

func Liveness(w http.ResponseWriter, r *http.Request) {
	render.PlainText(w, r, LivenessBody)
}
