package orggraph

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/orgchart/internal/ids"
)

// ReloadHook runs after a successful reload triggered over the API,
// with the freshly built graph. Used for audit logging and live pushes.
type ReloadHook func(*Graph)

// RegisterRoutes mounts the graph query endpoints on the given router.
func RegisterRoutes(r chi.Router, svc *Service, onReload ReloadHook) {
	r.Get("/api/version", handleVersion(svc))
	r.Get("/api/channels", handleChannels(svc))
	r.Get("/api/channels/{id}/hierarchy", handleHierarchy(svc))
	r.Get("/api/channels/{id}/teams", handleChannelTeams(svc))
	r.Get("/api/channels/{id}/users", handleChannelUsers(svc))
	r.Get("/api/teams", handleListTeams(svc))
	r.Get("/api/teams/{id}", handleGetTeam(svc))
	r.Get("/api/teams/{id}/users", handleTeamUsers(svc))
	r.Get("/api/teams/{id}/root", handleTeamRoot(svc))
	r.Get("/api/teams/{id}/children", handleTeamChildren(svc))
	r.Get("/api/teams/{id}/descendants", handleTeamDescendants(svc))
	r.Get("/api/teams/{id}/ancestors", handleTeamAncestors(svc))
	r.Get("/api/users/{id}", handleGetUser(svc))
	r.Get("/api/users/{id}/reports", handleUserReports(svc))
	r.Get("/api/users/{id}/visibility", handleUserVisibility(svc))
	r.Get("/api/diagnostics", handleDiagnostics(svc))
	r.Post("/api/reload", handleReload(svc, onReload))
}

// teamIDParam parses the {id} URL parameter. A malformed team ID is a
// client error, not a lookup miss.
func teamIDParam(w http.ResponseWriter, r *http.Request) (ids.TeamID, bool) {
	teamID, err := ids.ParseTeamID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return ids.TeamID{}, false
	}
	return teamID, true
}

func handleVersion(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Version())
	}
}

func handleChannels(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.ChannelOptions())
	}
}

func handleHierarchy(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channelID := ids.ChannelID(chi.URLParam(r, "id"))
		entries := svc.Graph().HierarchyForChannel(channelID)
		if entries == nil {
			entries = []HierarchyEntry{}
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func handleChannelTeams(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channelID := ids.ChannelID(chi.URLParam(r, "id"))
		teams := svc.Graph().TeamsForChannel(channelID)
		if teams == nil {
			teams = []*Team{}
		}
		writeJSON(w, http.StatusOK, teams)
	}
}

func handleChannelUsers(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channelID := ids.ChannelID(chi.URLParam(r, "id"))
		users := svc.Graph().UsersOfChannel(channelID)
		if users == nil {
			users = []*User{}
		}
		writeJSON(w, http.StatusOK, users)
	}
}

func handleListTeams(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g := svc.Graph()
		teams := make([]*Team, 0, len(g.Teams))
		for _, teamID := range g.sortedTeamIDs() {
			teams = append(teams, g.Teams[teamID])
		}
		writeJSON(w, http.StatusOK, teams)
	}
}

func handleGetTeam(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, ok := teamIDParam(w, r)
		if !ok {
			return
		}
		team, ok := svc.Graph().Teams[teamID]
		if !ok {
			http.Error(w, "team not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, team)
	}
}

func handleTeamUsers(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, ok := teamIDParam(w, r)
		if !ok {
			return
		}
		g := svc.Graph()
		if _, ok := g.Teams[teamID]; !ok {
			http.Error(w, "team not found", http.StatusNotFound)
			return
		}

		teamIDs := []ids.TeamID{teamID}
		if r.URL.Query().Get("recursive") == "1" {
			teamIDs = append(teamIDs, g.DescendantsOf(teamID)...)
		}
		users := g.UsersOfTeams(teamIDs)
		if users == nil {
			users = []*User{}
		}
		writeJSON(w, http.StatusOK, users)
	}
}

func handleTeamRoot(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, ok := teamIDParam(w, r)
		if !ok {
			return
		}
		root, err := svc.Graph().RootOf(teamID)
		if errors.Is(err, ErrConsolidationCycle) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		if root == nil {
			http.Error(w, "no discoverable root", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, root)
	}
}

func handleTeamChildren(svc *Service) http.HandlerFunc {
	return teamIDListHandler(svc, func(g *Graph, teamID ids.TeamID) []ids.TeamID {
		return g.ChildrenOf(teamID)
	})
}

func handleTeamDescendants(svc *Service) http.HandlerFunc {
	return teamIDListHandler(svc, func(g *Graph, teamID ids.TeamID) []ids.TeamID {
		return g.DescendantsOf(teamID)
	})
}

func handleTeamAncestors(svc *Service) http.HandlerFunc {
	return teamIDListHandler(svc, func(g *Graph, teamID ids.TeamID) []ids.TeamID {
		return g.AncestorsOf(teamID)
	})
}

func teamIDListHandler(svc *Service, query func(*Graph, ids.TeamID) []ids.TeamID) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, ok := teamIDParam(w, r)
		if !ok {
			return
		}
		g := svc.Graph()
		if _, ok := g.Teams[teamID]; !ok {
			http.Error(w, "team not found", http.StatusNotFound)
			return
		}
		result := query(g, teamID)
		if result == nil {
			result = []ids.TeamID{}
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func handleGetUser(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := ids.UserID(chi.URLParam(r, "id"))
		user, ok := svc.Graph().Users[userID]
		if !ok {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func handleUserReports(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := ids.UserID(chi.URLParam(r, "id"))
		users := svc.Graph().DirectReports(userID)
		if users == nil {
			users = []*User{}
		}
		writeJSON(w, http.StatusOK, users)
	}
}

func handleUserVisibility(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := ids.UserID(chi.URLParam(r, "id"))
		g := svc.Graph()

		var users []*User
		switch mode := r.URL.Query().Get("mode"); mode {
		case "", "privileged":
			users = g.PrivilegedView(userID)
		case "secondary":
			users = g.SecondaryView(userID)
		default:
			http.Error(w, "mode must be privileged or secondary", http.StatusBadRequest)
			return
		}
		if users == nil {
			users = []*User{}
		}
		writeJSON(w, http.StatusOK, users)
	}
}

func handleDiagnostics(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		diags := svc.Graph().Diagnostics
		if diags == nil {
			diags = []Diagnostic{}
		}
		writeJSON(w, http.StatusOK, diags)
	}
}

func handleReload(svc *Service, onReload ReloadHook) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		graph, err := svc.Reload()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if onReload != nil {
			onReload(graph)
		}
		writeJSON(w, http.StatusOK, svc.Version())
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
