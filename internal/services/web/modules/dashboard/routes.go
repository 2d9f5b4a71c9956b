package dashboard

import (
	"net/http"

	"github.com/louisbranch/galien/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Dashboard, h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.DashboardPrefix+"{$}", h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.ParticipantPattern, h.handleDetail)
	mux.HandleFunc(http.MethodGet+" "+routepath.ParticipantEditPattern, h.handleEdit)
	mux.HandleFunc(http.MethodPost+" "+routepath.ParticipantEditPattern, h.handleEditPost)
	mux.HandleFunc(http.MethodPost+" "+routepath.ParticipantEmailPattern, h.handleSendEmail)
	mux.HandleFunc(http.MethodPost+" "+routepath.ParticipantRevokePattern, h.handleRevoke)
	mux.HandleFunc(http.MethodPost+" "+routepath.ParticipantDeletePattern, h.handleDelete)
	mux.HandleFunc(routepath.DashboardPrefix+"{rest...}", h.WriteNotFound)
}
