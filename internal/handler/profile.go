package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/teamfolio/teamfolio-go/internal/middleware"
	"github.com/teamfolio/teamfolio-go/internal/model"
	"github.com/teamfolio/teamfolio-go/internal/service"
)

const (
	maxImageSize     = 10 << 20 // 10MB
	maxMultipartBody = maxImageSize + 1<<20
)

var (
	errInvalidUserID = errors.New("invalid user id")
	errInvalidNumber = errors.New("number must be an integer")
)

// ProfileHandler handles HTTP requests for user profiles.
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// HandleMe handles GET /api/auth/user requests.
func (h *ProfileHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthenticated"))
		return
	}

	h.writeUser(w, r, userID, meProjection)
}

// HandleGetByID handles GET /api/auth/user/{id} requests.
func (h *ProfileHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse(errInvalidUserID.Error()))
		return
	}

	h.writeUser(w, r, id, userByIDProjection)
}

func (h *ProfileHandler) writeUser(w http.ResponseWriter, r *http.Request, id int64, p model.Projection) {
	user, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		internalError(w, r, "fetch user failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": model.NewUserResponse(user, p)})
}

// HandleList handles GET /api/auth/users requests.
func (h *ProfileHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		internalError(w, r, "list users failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"users": model.NewUserResponses(users, listProjection)})
}

// HandleEdit handles POST /api/auth/useredit multipart requests.
func (h *ProfileHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthenticated"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxMultipartBody)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid multipart body"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	req, err := parseProfileEdit(r.MultipartForm)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	file, header, err := r.FormFile("profile_image")
	switch {
	case err == nil:
		defer file.Close()
		req.Image = &model.ImageUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		}
	case !errors.Is(err, http.ErrMissingFile):
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid profile_image"))
		return
	}

	user, err := h.service.Edit(r.Context(), callerID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotProfileOwner):
			writeJSON(w, http.StatusForbidden, errorResponse(err.Error()))
		case errors.Is(err, service.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		case errors.Is(err, service.ErrInvalidImageName):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			internalError(w, r, "profile edit failed", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": model.NewUserResponse(user, editProjection)})
}

// parseProfileEdit reads the text fields of a profile edit. A field that is
// absent from the form is written as NULL.
func parseProfileEdit(form *multipart.Form) (model.ProfileEditRequest, error) {
	var req model.ProfileEditRequest

	id, err := strconv.ParseInt(strings.TrimSpace(formValue(form, "id")), 10, 64)
	if err != nil {
		return req, errInvalidUserID
	}
	req.TargetID = id

	if raw := strings.TrimSpace(formValue(form, "number")); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return req, errInvalidNumber
		}
		req.Update.Number = &n
	}

	req.Update.Department = optionalFormValue(form, "department")
	req.Update.Classification = optionalFormValue(form, "classification")
	req.Update.Hobby = optionalFormValue(form, "hoby")
	req.Update.BusinessExperience = optionalFormValue(form, "business_experience")

	return req, nil
}

func formValue(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func optionalFormValue(form *multipart.Form, key string) *string {
	v, ok := form.Value[key]
	if !ok || len(v) == 0 {
		return nil
	}
	s := v[0]
	return &s
}
