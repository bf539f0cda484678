package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fitflow/onboarding-app/internal/config"
	"fitflow/onboarding-app/internal/domain"
)

const defaultRequestTimeout = 60 * time.Second

// httpGenerator implements Generator against the model-serving HTTP endpoint.
// The endpoint wraps the actual LLM; this client only speaks its JSON shapes.
type httpGenerator struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

// NewHTTPGenerator creates a Generator talking to the configured endpoint.
func NewHTTPGenerator(cfg config.GenerationConfig) Generator {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &httpGenerator{
		client:   &http.Client{Timeout: timeout},
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
	}
}

// --- Wire shapes for the generation service ---

type generateRequest struct {
	Task       string                `json:"task"` // "assessment" or "program"
	Answers    []domain.SurveyAnswer `json:"answers,omitempty"`
	Assessment string                `json:"assessment,omitempty"`
}

type assessmentPayload struct {
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths"`
	Limitations     []string `json:"limitations"`
	Recommendations []string `json:"recommendations"`
}

type programPayload struct {
	Title string `json:"title"`
	Weeks []struct {
		WeekNumber int    `json:"weekNumber"`
		Goal       string `json:"goal"`
		Sessions   []struct {
			Name      string `json:"name"`
			Goal      string `json:"goal"`
			Exercises []struct {
				ExerciseID string `json:"exerciseId"`
				Name       string `json:"name"`
				Sets       int    `json:"sets"`
				Reps       int    `json:"reps"`
				Notes      string `json:"notes"`
			} `json:"exercises"`
		} `json:"sessions"`
	} `json:"weeks"`
}

func (g *httpGenerator) post(ctx context.Context, reqBody generateRequest, out interface{}) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.WithFields(logrus.Fields{
			"task":   reqBody.Task,
			"status": resp.StatusCode,
		}).Error("generation service returned non-200")
		return fmt.Errorf("%w: status %d", ErrGenerationFailed, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedGeneration, err)
	}
	return nil
}

// GenerateAssessment turns survey answers into a fitness assessment.
func (g *httpGenerator) GenerateAssessment(ctx context.Context, survey *domain.Survey) (*domain.Assessment, error) {
	var payload assessmentPayload
	err := g.post(ctx, generateRequest{Task: "assessment", Answers: survey.Answers}, &payload)
	if err != nil {
		return nil, err
	}
	if payload.Summary == "" {
		return nil, fmt.Errorf("%w: empty summary", ErrMalformedGeneration)
	}

	return &domain.Assessment{
		UserID:          survey.UserID,
		SurveyID:        survey.ID,
		Summary:         payload.Summary,
		Strengths:       payload.Strengths,
		Limitations:     payload.Limitations,
		Recommendations: payload.Recommendations,
	}, nil
}

// GenerateProgram turns an approved assessment into a date-free program.
func (g *httpGenerator) GenerateProgram(ctx context.Context, assessment *domain.Assessment, survey *domain.Survey) (*domain.Program, error) {
	req := generateRequest{Task: "program", Assessment: assessment.Summary}
	if survey != nil {
		req.Answers = survey.Answers
	}

	var payload programPayload
	if err := g.post(ctx, req, &payload); err != nil {
		return nil, err
	}
	if len(payload.Weeks) == 0 {
		return nil, fmt.Errorf("%w: program has no weeks", ErrMalformedGeneration)
	}

	program := &domain.Program{
		UserID: assessment.UserID,
		Title:  payload.Title,
		Status: domain.ProgramStatusDraft,
	}
	for w, week := range payload.Weeks {
		newWeek := domain.Week{
			WeekNumber: w + 1, // trust position, not the model's numbering
			Goal:       week.Goal,
		}
		for _, session := range week.Sessions {
			newSession := domain.Session{
				ID:   uuid.NewString(),
				Name: session.Name,
				Goal: session.Goal,
			}
			for _, ex := range session.Exercises {
				newSession.Exercises = append(newSession.Exercises, domain.Exercise{
					ExerciseID: ex.ExerciseID,
					Name:       ex.Name,
					Sets:       ex.Sets,
					Reps:       ex.Reps,
					Notes:      ex.Notes,
				})
			}
			newWeek.Sessions = append(newWeek.Sessions, newSession)
		}
		program.Weeks = append(program.Weeks, newWeek)
	}
	return program, nil
}
