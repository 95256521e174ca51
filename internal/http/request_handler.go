package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tutorschool/msms/internal/model"
	"github.com/tutorschool/msms/internal/service"
)

type RequestHandler struct {
	svc *service.RequestService
}

func NewRequestHandler(svc *service.RequestService) *RequestHandler {
	return &RequestHandler{svc: svc}
}

func (h *RequestHandler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type lessonRequestBody struct {
	StudentID     int64  `json:"student_id"`
	Availability  string `json:"availability"`
	LessonCount   int    `json:"lesson_count"`
	IntervalWeeks int    `json:"interval_weeks"`
	Duration      int    `json:"duration"`
	Topic         string `json:"topic"`
	Teacher       string `json:"teacher"`
}

func (h *RequestHandler) create(w http.ResponseWriter, r *http.Request) {
	var req lessonRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	request, err := h.svc.Create(r.Context(), &model.LessonRequest{
		StudentID:     req.StudentID,
		Availability:  req.Availability,
		LessonCount:   req.LessonCount,
		IntervalWeeks: req.IntervalWeeks,
		Duration:      req.Duration,
		Topic:         req.Topic,
		Teacher:       req.Teacher,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, request)
}

func (h *RequestHandler) list(w http.ResponseWriter, r *http.Request) {
	// Фильтр по студенту для страницы "мои заявки"
	if raw := r.URL.Query().Get("student_id"); raw != "" {
		studentID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid student_id", http.StatusBadRequest)
			return
		}

		requests, err := h.svc.ListByStudent(r.Context(), studentID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, requests)
		return
	}

	requests, err := h.svc.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requests)
}

func (h *RequestHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	request, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if request == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "lesson request not found"})
		return
	}

	writeJSON(w, http.StatusOK, request)
}

func (h *RequestHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req lessonRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	request := &model.LessonRequest{
		ID:            id,
		StudentID:     req.StudentID,
		Availability:  req.Availability,
		LessonCount:   req.LessonCount,
		IntervalWeeks: req.IntervalWeeks,
		Duration:      req.Duration,
		Topic:         req.Topic,
		Teacher:       req.Teacher,
	}

	if err := h.svc.Update(r.Context(), request); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, request)
}

func (h *RequestHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
