package transport

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rescueops/admin-console/application/accounts"
	"github.com/rescueops/admin-console/application/editor"
	"github.com/rescueops/admin-console/application/events"
	"github.com/rescueops/admin-console/application/help"
	localeapp "github.com/rescueops/admin-console/application/locale"
	"github.com/rescueops/admin-console/application/mapview"
	"github.com/rescueops/admin-console/application/missing"
	"github.com/rescueops/admin-console/application/session"
	"github.com/rescueops/admin-console/constant"
	"github.com/rescueops/admin-console/utils/errors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RestHandler exposes the five management screens. Each screen owns one
// long-lived controller; the handlers only drive its state machine.
type RestHandler struct {
	Accounts *accounts.Controller
	Events   *events.Controller
	Missing  *missing.Controller
	Help     *help.Controller
	Map      *mapview.Viewer
	Locale   *localeapp.Manager
}

func NewTransport(rh *RestHandler, sessionApp session.SessionApp, internalAPIKey string) http.Handler {
	router := mux.NewRouter()

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	registerEditorRoutes(router, "/users", rh.Accounts)
	registerEditorRoutes(router, "/events", rh.Events)
	registerEditorRoutes(router, "/missing-persons", rh.Missing)
	registerEditorRoutes(router, "/help-content", rh.Help)

	router.HandleFunc("/map/markers", rh.ListMarkers).Methods(http.MethodGet)
	router.HandleFunc("/map/pins", rh.ListPins).Methods(http.MethodGet)

	router.HandleFunc("/locale", rh.GetLocale).Methods(http.MethodGet)
	router.HandleFunc("/locale", rh.SetLocale).Methods(http.MethodPut)

	// Internal routes for the change-feed consumer
	internal := router.PathPrefix("/internal/v1").Subrouter()
	internal.Use(InternalMiddleware(internalAPIKey))
	internal.HandleFunc("/refresh/{collection}", rh.RefreshCollection).Methods(http.MethodPost)

	router.Use(LoggingMiddleware())
	router.Use(AuthMiddleware(sessionApp))

	return router
}

// registerEditorRoutes wires one editor screen: list, form state,
// selection, cancel, submit and confirmed delete.
func registerEditorRoutes[E any, F any](router *mux.Router, prefix string, ctrl *editor.Controller[E, F]) {
	router.HandleFunc(prefix, listHandler(ctrl)).Methods(http.MethodGet)
	router.HandleFunc(prefix+"/form", formHandler(ctrl)).Methods(http.MethodGet)
	router.HandleFunc(prefix+"/select/{id}", selectHandler(ctrl)).Methods(http.MethodPost)
	router.HandleFunc(prefix+"/cancel", cancelHandler(ctrl)).Methods(http.MethodPost)
	router.HandleFunc(prefix+"/submit", submitHandler(ctrl)).Methods(http.MethodPost)
	router.HandleFunc(prefix+"/{id}", deleteHandler(ctrl)).Methods(http.MethodDelete)
}

func listHandler[E any, F any](ctrl *editor.Controller[E, F]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.Refresh(r.Context()); err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, ctrl.Rows())
	}
}

type formState struct {
	Mode       editor.Mode `json:"mode"`
	SelectedID string      `json:"selected_id,omitempty"`
	Form       any         `json:"form"`
}

func formHandler[E any, F any](ctrl *editor.Controller[E, F]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeSuccess(w, formState{
			Mode:       ctrl.Mode(),
			SelectedID: ctrl.SelectedID(),
			Form:       ctrl.Form(),
		})
	}
}

func selectHandler[E any, F any](ctrl *editor.Controller[E, F]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		if err := ctrl.Select(id); err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, formState{
			Mode:       ctrl.Mode(),
			SelectedID: ctrl.SelectedID(),
			Form:       ctrl.Form(),
		})
	}
}

func cancelHandler[E any, F any](ctrl *editor.Controller[E, F]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctrl.Cancel()
		writeSuccess(w, formState{Mode: ctrl.Mode(), Form: ctrl.Form()})
	}
}

func submitHandler[E any, F any](ctrl *editor.Controller[E, F]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form F
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
			return
		}

		warnings, err := ctrl.Submit(r.Context(), form)
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccessWarnings(w, ctrl.Rows(), warnings)
	}
}

func deleteHandler[E any, F any](ctrl *editor.Controller[E, F]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		confirmed := r.URL.Query().Get("confirm") == "true"

		warnings, err := ctrl.Delete(r.Context(), id, confirmed)
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccessWarnings(w, ctrl.Rows(), warnings)
	}
}

// ListMarkers handler
// @Summary List markers
// @Description Re-fetches and returns every marker row
// @Tags Map
// @Produce json
// @Success 200 {object} transport.response
// @Router /map/markers [get]
func (s *RestHandler) ListMarkers(w http.ResponseWriter, r *http.Request) {
	if err := s.Map.Refresh(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, s.Map.Markers())
}

// ListPins handler
// @Summary List projected map pins
// @Description Returns renderable pins; markers without a coordinate payload are skipped
// @Tags Map
// @Produce json
// @Success 200 {object} transport.response
// @Router /map/pins [get]
func (s *RestHandler) ListPins(w http.ResponseWriter, r *http.Request) {
	if err := s.Map.Refresh(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, s.Map.Pins())
}

type localePayload struct {
	Locale string `json:"locale"`
}

// GetLocale handler
// @Summary Current display locale
// @Tags Locale
// @Produce json
// @Success 200 {object} transport.response
// @Router /locale [get]
func (s *RestHandler) GetLocale(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, localePayload{Locale: s.Locale.Load(r.Context())})
}

// SetLocale handler
// @Summary Change display locale
// @Tags Locale
// @Accept json
// @Produce json
// @Success 200 {object} transport.response
// @Router /locale [put]
func (s *RestHandler) SetLocale(w http.ResponseWriter, r *http.Request) {
	var req localePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := s.Locale.Set(r.Context(), req.Locale); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, localePayload{Locale: req.Locale})
}

// RefreshCollection re-fetches one screen's cache on behalf of the
// change-feed consumer.
func (s *RestHandler) RefreshCollection(w http.ResponseWriter, r *http.Request) {
	collection := mux.Vars(r)["collection"]

	var err error
	switch collection {
	case constant.CollectionUsers:
		err = s.Accounts.Refresh(r.Context())
	case constant.CollectionSearchEvents:
		err = s.Events.Refresh(r.Context())
	case constant.CollectionMissingPersons:
		err = s.Missing.Refresh(r.Context())
	case constant.CollectionHelpContent:
		err = s.Help.Refresh(r.Context())
	case constant.CollectionMarkers:
		err = s.Map.Refresh(r.Context())
	default:
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}
