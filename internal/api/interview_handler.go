package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"mock-interview/internal/interview"
	"mock-interview/internal/logger"
	"mock-interview/internal/resume"
	"mock-interview/internal/session"
)

// User-facing error strings. Clients surface these verbatim.
const (
	msgNoFile         = "No resume file uploaded."
	msgInvalidPDF     = "The uploaded file is not a valid PDF or has an invalid structure. Please upload a different PDF."
	msgInvalidSession = "Invalid session ID"
	msgInvalidRole    = "Invalid role selected"
	msgNoRole         = "No role selected for this session"
)

type uploadResponse struct {
	Success       bool   `json:"success"`
	SessionID     string `json:"sessionId"`
	Message       string `json:"message"`
	ResumePreview string `json:"resumePreview"`
}

type startInterviewRequest struct {
	SessionID string `json:"sessionId"`
	RoleKey   string `json:"roleKey"`
}

type startInterviewResponse struct {
	Success   bool   `json:"success"`
	Question  string `json:"question"`
	RoleName  string `json:"roleName"`
	SessionID string `json:"sessionId"`
}

type submitAnswerRequest struct {
	SessionID  string `json:"sessionId"`
	UserAnswer string `json:"userAnswer"`
}

type submitAnswerResponse struct {
	Success      bool   `json:"success"`
	NextQuestion string `json:"nextQuestion"`
	// QuestionNumber is the 1-based bank position, or the literal string
	// "AI-generated" once the session runs on fallback questions.
	QuestionNumber any `json:"questionNumber"`
}

type feedbackRequest struct {
	SessionID string `json:"sessionId"`
}

type sessionData struct {
	FileName          string    `json:"fileName"`
	UploadTime        time.Time `json:"uploadTime"`
	InterviewDuration string    `json:"interviewDuration"`
}

type feedbackResponse struct {
	Success        bool        `json:"success"`
	Feedback       string      `json:"feedback"`
	RoleName       string      `json:"roleName"`
	TotalQuestions int         `json:"totalQuestions"`
	SessionData    sessionData `json:"sessionData"`
}

// RolesHandler returns the role catalog.
// @Summary List engineering roles
// @Description Returns the full role catalog keyed by role identifier
// @Tags roles
// @Produce json
// @Success 200 {object} map[string]catalog.Role
// @Router /roles [get]
func (a *API) RolesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, a.catalog.Roles())
}

// UploadResumeHandler accepts a PDF resume and opens a session.
// @Summary Upload resume
// @Description Upload a PDF resume, extract its text and create an interview session
// @Tags interview
// @Accept multipart/form-data
// @Produce json
// @Param resume formData file true "Resume (PDF)"
// @Success 200 {object} uploadResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /upload-resume [post]
func (a *API) UploadResumeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := r.ParseMultipartForm(a.maxUpload); err != nil {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Resume upload too large or malformed (max %dMB).", a.maxUpload>>20))
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		writeError(w, http.StatusBadRequest, msgNoFile)
		return
	}
	defer file.Close()

	text, err := a.extractor.ExtractText(header.Filename, file)
	if err != nil {
		if errors.Is(err, resume.ErrInvalidPDF) {
			writeError(w, http.StatusBadRequest, msgInvalidPDF)
			return
		}
		a.log.Error("resume extraction failed",
			zap.String("file", header.Filename), zap.Error(err))
		writeError(w, http.StatusInternalServerError,
			"Failed to upload resume due to an unexpected error.")
		return
	}

	id := a.sessions.Create(text, header.Filename)
	a.log.Info("resume uploaded",
		zap.String("session", id),
		zap.String("file", header.Filename),
		zap.Int("text_length", len(text)),
		zap.String("preview", logger.Truncate(text, 80)))

	writeJSON(w, http.StatusOK, uploadResponse{
		Success:       true,
		SessionID:     id,
		Message:       "Resume uploaded successfully",
		ResumePreview: resumePreview(text),
	})
}

// StartInterviewHandler binds a role to the session and asks the first question.
// @Summary Start interview
// @Description Select a role for the session and receive the opening question
// @Tags interview
// @Accept json
// @Produce json
// @Param request body startInterviewRequest true "Session and role"
// @Success 200 {object} startInterviewResponse
// @Failure 400 {object} errorResponse
// @Router /start-interview [post]
func (a *API) StartInterviewHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req startInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	role, roleOK := a.catalog.Role(req.RoleKey)
	bank := a.catalog.Questions(req.RoleKey)

	var question string
	err := a.sessions.Update(req.SessionID, func(s *session.Session) {
		if !roleOK {
			return
		}
		selected := role
		s.Role = &selected
		s.RoleKey = req.RoleKey
		if len(bank) > 0 {
			question = bank[0].Question
			s.Cursor = session.IndexedCursor(0)
		} else {
			question = interview.OpeningQuestion(role, s.ResumeText)
			s.Cursor = session.FallbackCursor()
		}
		s.AppendAI(question)
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidSession)
		return
	}
	if !roleOK {
		writeError(w, http.StatusBadRequest, msgInvalidRole)
		return
	}

	a.log.Info("interview started",
		zap.String("session", req.SessionID),
		zap.String("role", req.RoleKey),
		zap.Int("bank_size", len(bank)))

	writeJSON(w, http.StatusOK, startInterviewResponse{
		Success:   true,
		Question:  question,
		RoleName:  role.Name,
		SessionID: req.SessionID,
	})
}

// SubmitAnswerHandler records an answer and asks the next question.
// @Summary Submit answer
// @Description Record the candidate answer and return the next question
// @Tags interview
// @Accept json
// @Produce json
// @Param request body submitAnswerRequest true "Session and answer"
// @Success 200 {object} submitAnswerResponse
// @Failure 400 {object} errorResponse
// @Router /submit-answer [post]
func (a *API) SubmitAnswerHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req submitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	var (
		noRole       bool
		nextQuestion string
		number       any
	)
	err := a.sessions.Update(req.SessionID, func(s *session.Session) {
		if s.Role == nil {
			noRole = true
			return
		}
		s.AppendUser(req.UserAnswer)

		bank := a.catalog.Questions(s.RoleKey)
		next := s.Cursor.Next(len(bank))
		if idx, ok := next.Index(); ok {
			nextQuestion = bank[idx].Question
			number = idx + 1
		} else {
			nextQuestion = interview.FollowUpQuestion(s.Turns)
			number = "AI-generated"
		}
		s.Cursor = next
		s.AppendAI(nextQuestion)
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidSession)
		return
	}
	if noRole {
		writeError(w, http.StatusBadRequest, msgNoRole)
		return
	}

	writeJSON(w, http.StatusOK, submitAnswerResponse{
		Success:        true,
		NextQuestion:   nextQuestion,
		QuestionNumber: number,
	})
}

// GetFeedbackHandler produces the end-of-interview report.
// @Summary Get feedback
// @Description Generate the heuristic feedback report for the session
// @Tags interview
// @Accept json
// @Produce json
// @Param request body feedbackRequest true "Session"
// @Success 200 {object} feedbackResponse
// @Failure 400 {object} errorResponse
// @Router /get-feedback [post]
func (a *API) GetFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	var (
		noRole bool
		resp   feedbackResponse
	)
	err := a.sessions.View(req.SessionID, func(s *session.Session) {
		if s.Role == nil {
			noRole = true
			return
		}
		resp = feedbackResponse{
			Success:        true,
			Feedback:       interview.Feedback(*s.Role, s.ResumeText, s.Turns),
			RoleName:       s.Role.Name,
			TotalQuestions: s.QuestionsAsked(),
			SessionData: sessionData{
				FileName:          s.FileName,
				UploadTime:        s.UploadTime,
				InterviewDuration: time.Since(s.UploadTime).Round(time.Second).String(),
			},
		}
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidSession)
		return
	}
	if noRole {
		writeError(w, http.StatusBadRequest, msgNoRole)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// resumePreview mirrors the preview shown after upload: the first 200
// characters with a trailing ellipsis.
func resumePreview(text string) string {
	runes := []rune(text)
	if len(runes) > 200 {
		runes = runes[:200]
	}
	return string(runes) + "..."
}
