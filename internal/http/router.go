package http

import (
	"net/http"
	"strings"
)

type RouterConfig struct {
	Auth         *AuthHandler
	Clients      *ClientHandler
	Housekeepers *HousekeeperHandler
	Leads        *LeadHandler
	Middleware   []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Auth != nil {
		mux.HandleFunc("/sessions", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Auth.CreateSession(w, r)
		})
		mux.HandleFunc("/sessions/current", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				methodNotAllowed(w, http.MethodDelete)
				return
			}
			cfg.Auth.DeleteCurrentSession(w, r)
		})
	}

	if cfg.Clients != nil {
		mux.HandleFunc("/clients", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Clients.List(w, r)
			case http.MethodPost:
				cfg.Clients.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/clients/", func(w http.ResponseWriter, r *http.Request) {
			segments := splitPath(strings.TrimPrefix(r.URL.Path, "/clients/"))
			if len(segments) == 0 {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithClientID(r.Context(), segments[0]))

			switch {
			case len(segments) == 1:
				switch r.Method {
				case http.MethodGet:
					cfg.Clients.Get(w, r)
				case http.MethodPut:
					cfg.Clients.Update(w, r)
				case http.MethodDelete:
					cfg.Clients.Delete(w, r)
				default:
					methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
				}
			case len(segments) == 2 && segments[1] == "housekeeping":
				switch r.Method {
				case http.MethodPut:
					cfg.Clients.SetHousekeeping(w, r)
				case http.MethodDelete:
					cfg.Clients.ClearHousekeeping(w, r)
				default:
					methodNotAllowed(w, http.MethodPut, http.MethodDelete)
				}
			case len(segments) == 3 && segments[1] == "housekeeping" && segments[2] == "deferments":
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.Clients.Defer(w, r)
			case len(segments) == 2 && segments[1] == "booking":
				switch r.Method {
				case http.MethodPut:
					cfg.Clients.SetBooking(w, r)
				case http.MethodDelete:
					cfg.Clients.ClearBooking(w, r)
				default:
					methodNotAllowed(w, http.MethodPut, http.MethodDelete)
				}
			default:
				http.NotFound(w, r)
			}
		})
	}

	if cfg.Housekeepers != nil {
		mux.HandleFunc("/housekeepers", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Housekeepers.List(w, r)
			case http.MethodPost:
				cfg.Housekeepers.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/housekeepers/", func(w http.ResponseWriter, r *http.Request) {
			segments := splitPath(strings.TrimPrefix(r.URL.Path, "/housekeepers/"))
			if len(segments) == 0 {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithHousekeeperID(r.Context(), segments[0]))

			switch {
			case len(segments) == 1:
				switch r.Method {
				case http.MethodGet:
					cfg.Housekeepers.Get(w, r)
				case http.MethodPut:
					cfg.Housekeepers.Update(w, r)
				case http.MethodDelete:
					cfg.Housekeepers.Delete(w, r)
				default:
					methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
				}
			case len(segments) == 2 && segments[1] == "bookings":
				switch r.Method {
				case http.MethodGet:
					cfg.Housekeepers.ListBookings(w, r)
				case http.MethodPost:
					cfg.Housekeepers.AddBooking(w, r)
				default:
					methodNotAllowed(w, http.MethodGet, http.MethodPost)
				}
			case len(segments) == 3 && segments[1] == "bookings":
				if r.Method != http.MethodDelete {
					methodNotAllowed(w, http.MethodDelete)
					return
				}
				cfg.Housekeepers.DeleteBooking(w, r, segments[2])
			default:
				http.NotFound(w, r)
			}
		})
	}

	if cfg.Leads != nil {
		mux.HandleFunc("/leads", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Leads.List(w, r)
		})
	}

	var handler http.Handler = mux
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
