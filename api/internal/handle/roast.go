package handle

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"roast-bot/api/internal/logging"
	"roast-bot/api/internal/roast"
)

const formMemory = 8 << 20

// Roast handles POST /api/roast (multipart: name, habit, level, image).
func (h *Handle) Roast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	log := logging.From(r.Context(), h.log)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(formMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			writeDetail(w, http.StatusRequestEntityTooLarge, "Upload is too large")
			return
		}
		writeDetail(w, http.StatusBadRequest, "Invalid form data: "+err.Error())
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	level, err := strconv.Atoi(strings.TrimSpace(r.FormValue("level")))
	if err != nil {
		level = 0
	}
	req := roast.Request{
		Name:  strings.TrimSpace(r.FormValue("name")),
		Habit: strings.TrimSpace(r.FormValue("habit")),
		Level: level,
	}

	if err := req.Validate(); err == nil {
		img, err := readImage(r)
		if err != nil {
			log.Error().Err(err).Msg("error processing image")
		}
		req.Image = img
	}

	res, err := h.svc.Roast(r.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, roast.ErrNameHabitRequired):
		writeDetail(w, http.StatusBadRequest, "Name and habit are required")
		return
	case errors.Is(err, roast.ErrLevelOutOfRange):
		writeDetail(w, http.StatusBadRequest, "Level must be between 1 and 5")
		return
	default:
		log.Error().Err(err).Msg("unexpected error")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	log.Info().Str("name", req.Name).Bool("fallback", roast.IsFallback(res, req.Name, req.Habit)).Msg("roast served")
	writeJSON(w, http.StatusOK, res)
}

// readImage returns the uploaded photo, or nil when none was sent.
func readImage(r *http.Request) ([]byte, error) {
	f, _, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
