package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dbcalc/dbcalc/internal/database"
	"github.com/dbcalc/dbcalc/internal/report"
	"github.com/dbcalc/dbcalc/internal/request"
	"github.com/dbcalc/dbcalc/internal/sizing"
)

// Options tune a Server. Zero values select the defaults.
type Options struct {
	DefaultHardware string
	MaxRequestBytes int64
}

// Server holds dependencies for API handlers.
type Server struct {
	repo            database.Repo
	defaultHardware string
	maxBody         int64
}

// NewServer creates a new API server.
func NewServer(repo database.Repo, opts Options) *Server {
	s := &Server{
		repo:            repo,
		defaultHardware: opts.DefaultHardware,
		maxBody:         opts.MaxRequestBytes,
	}
	if s.defaultHardware == "" {
		s.defaultHardware = database.DefaultHardware
	}
	if s.maxBody <= 0 {
		s.maxBody = 64 * 1024
	}
	return s
}

// RegisterRoutes registers all API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	mux.HandleFunc("GET /api/v1/hardware", s.handleListHardware)
	mux.HandleFunc("GET /api/v1/hardware/{name}", s.handleGetHardware)
	mux.HandleFunc("GET /api/v1/engines", s.handleListEngines)
	mux.HandleFunc("GET /api/v1/engines/{name}", s.handleGetEngine)
	mux.HandleFunc("GET /api/v1/workloads", s.handleListWorkloads)
	mux.HandleFunc("GET /api/v1/workloads/{name}", s.handleGetWorkload)
	mux.HandleFunc("POST /api/v1/calculate", s.handleCalculate)
	mux.HandleFunc("POST /api/v1/compare", s.handleCompare)
}

// Handler returns the routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return LogRequest(mux)
}

// CalculateRequest selects catalog entries by name. Explicit requirements or
// profile records take precedence over the workload or engine names.
type CalculateRequest struct {
	Hardware     string                `json:"hardware,omitempty"`
	Engine       string                `json:"engine,omitempty"`
	Workload     string                `json:"workload,omitempty"`
	Requirements *sizing.Requirements  `json:"requirements,omitempty"`
	Profile      *sizing.EngineProfile `json:"profile,omitempty"`
}

// CalculateResponse is the result of one calculation.
type CalculateResponse struct {
	ID       string         `json:"id"`
	Hardware string         `json:"hardware,omitempty"`
	Engine   string         `json:"engine,omitempty"`
	Workload string         `json:"workload,omitempty"`
	Summary  report.Summary `json:"summary"`
}

// CompareRequest sizes one workload on several engines.
type CompareRequest struct {
	Hardware     string               `json:"hardware,omitempty"`
	Workload     string               `json:"workload,omitempty"`
	Requirements *sizing.Requirements `json:"requirements,omitempty"`
	Engines      []string             `json:"engines,omitempty"`
}

// CompareEntry is one engine's result within a comparison.
type CompareEntry struct {
	Engine      string         `json:"engine"`
	DisplayName string         `json:"display_name,omitempty"`
	Summary     report.Summary `json:"summary"`
}

// CompareResponse lists results in the order engines were requested.
type CompareResponse struct {
	ID           string              `json:"id"`
	Hardware     string              `json:"hardware"`
	Workload     string              `json:"workload,omitempty"`
	Requirements sizing.Requirements `json:"requirements"`
	Entries      []CompareEntry      `json:"entries"`
}

// apiError carries an HTTP status through helpers and errgroup.
type apiError struct {
	code   int
	msg    string
	fields []*request.FieldError
}

func (e *apiError) Error() string { return e.msg }

func notFound(kind, name string) error {
	return &apiError{code: http.StatusNotFound, msg: fmt.Sprintf("%s %s not found", kind, name)}
}

func badRequest(format string, args ...any) error {
	return &apiError{code: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

func invalidInput(msg string, err error) error {
	return &apiError{code: http.StatusBadRequest, msg: msg, fields: request.FieldErrors(err)}
}

func (s *Server) handleListHardware(w http.ResponseWriter, r *http.Request) {
	presets, err := s.repo.ListHardwarePresets(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "hardware query failed")
		return
	}
	if presets == nil {
		presets = []database.HardwarePreset{}
	}
	writeJSON(w, http.StatusOK, presets)
}

func (s *Server) handleGetHardware(w http.ResponseWriter, r *http.Request) {
	hw, err := s.hardware(r, r.PathValue("name"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hw)
}

func (s *Server) handleListEngines(w http.ResponseWriter, r *http.Request) {
	engines, err := s.repo.ListEngines(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "engine query failed")
		return
	}
	if engines == nil {
		engines = []database.Engine{}
	}
	writeJSON(w, http.StatusOK, engines)
}

func (s *Server) handleGetEngine(w http.ResponseWriter, r *http.Request) {
	e, err := s.engine(r, r.PathValue("name"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleListWorkloads(w http.ResponseWriter, r *http.Request) {
	workloads, err := s.repo.ListWorkloads(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "workload query failed")
		return
	}
	if workloads == nil {
		workloads = []database.Workload{}
	}
	writeJSON(w, http.StatusOK, workloads)
}

func (s *Server) handleGetWorkload(w http.ResponseWriter, r *http.Request) {
	wl, err := s.workload(r, r.PathValue("name"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wl)
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}

	var resp CalculateResponse
	var in sizing.Input
	if isJSON(r) {
		var req CalculateRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		in, resp, err = s.resolveCalculation(r, req)
	} else {
		in, err = decodeForm(body)
	}
	if err != nil {
		writeErr(w, err)
		return
	}

	res := sizing.ComputeInput(in)
	resp.ID = uuid.NewString()
	resp.Summary = report.Summarize(res, in.Profile)

	slog.Info("calculation",
		"request_id", RequestID(r.Context()),
		"id", resp.ID,
		"engine", resp.Engine,
		"workload", resp.Workload,
		"servers", res.Servers,
		"bottleneck", res.Bottleneck,
		"feasible", res.Feasible,
	)

	if r.URL.Query().Get("format") == "kv" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("X-Calculation-ID", resp.ID)
		report.WriteKV(w, resp.Summary)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// decodeForm parses the flat 28-field form.
func decodeForm(body []byte) (sizing.Input, error) {
	d, err := request.Decode(bytes.NewReader(body))
	if err != nil {
		return sizing.Input{}, invalidInput("invalid form", err)
	}
	if err := d.Complete(); err != nil {
		return sizing.Input{}, &apiError{
			code:   http.StatusBadRequest,
			msg:    err.Error(),
			fields: missingFields(d.Missing()),
		}
	}
	in := d.Input()
	if err := request.Validate(in); err != nil {
		return sizing.Input{}, invalidInput("invalid input", err)
	}
	return in, nil
}

func missingFields(names []string) []*request.FieldError {
	out := make([]*request.FieldError, len(names))
	for i, n := range names {
		out[i] = &request.FieldError{Field: n, Reason: "missing"}
	}
	return out
}

func (s *Server) resolveCalculation(r *http.Request, req CalculateRequest) (sizing.Input, CalculateResponse, error) {
	resp := CalculateResponse{Engine: req.Engine, Workload: req.Workload}

	hwName := req.Hardware
	if hwName == "" {
		hwName = s.defaultHardware
	}
	hw, err := s.hardware(r, hwName)
	if err != nil {
		return sizing.Input{}, resp, err
	}
	resp.Hardware = hw.Name

	var reqs sizing.Requirements
	switch {
	case req.Requirements != nil:
		reqs = *req.Requirements
	case req.Workload != "":
		wl, err := s.workload(r, req.Workload)
		if err != nil {
			return sizing.Input{}, resp, err
		}
		reqs = wl.Requirements
	default:
		return sizing.Input{}, resp, badRequest("workload or requirements is required")
	}

	var profile sizing.EngineProfile
	switch {
	case req.Profile != nil:
		profile = *req.Profile
	case req.Engine != "":
		e, err := s.engine(r, req.Engine)
		if err != nil {
			return sizing.Input{}, resp, err
		}
		profile = e.Profile
	default:
		return sizing.Input{}, resp, badRequest("engine or profile is required")
	}

	in := database.Input(hw, reqs, profile)
	if err := request.Validate(in); err != nil {
		return sizing.Input{}, resp, invalidInput("invalid input", err)
	}
	return in, resp, nil
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ctx := r.Context()

	hwName := req.Hardware
	if hwName == "" {
		hwName = s.defaultHardware
	}
	hw, err := s.hardware(r, hwName)
	if err != nil {
		writeErr(w, err)
		return
	}

	resp := CompareResponse{ID: uuid.NewString(), Hardware: hw.Name, Workload: req.Workload}
	switch {
	case req.Requirements != nil:
		resp.Requirements = *req.Requirements
	case req.Workload != "":
		wl, err := s.workload(r, req.Workload)
		if err != nil {
			writeErr(w, err)
			return
		}
		resp.Requirements = wl.Requirements
	default:
		writeError(w, http.StatusBadRequest, "workload or requirements is required")
		return
	}

	names := req.Engines
	if len(names) == 0 {
		all, err := s.repo.ListEngines(ctx)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "engine query failed")
			return
		}
		for _, e := range all {
			names = append(names, e.Name)
		}
	}

	resp.Entries = make([]CompareEntry, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			e, err := s.repo.GetEngine(gctx, name)
			if err != nil {
				return fmt.Errorf("lookup engine %s: %w", name, err)
			}
			if e == nil {
				return notFound("engine", name)
			}
			in := database.Input(hw, resp.Requirements, e.Profile)
			if err := request.Validate(in); err != nil {
				return invalidInput(fmt.Sprintf("engine %s: invalid input", name), err)
			}
			resp.Entries[i] = CompareEntry{
				Engine:      e.Name,
				DisplayName: e.DisplayName,
				Summary:     report.Summarize(sizing.ComputeInput(in), e.Profile),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		writeErr(w, err)
		return
	}

	slog.Info("comparison",
		"request_id", RequestID(ctx),
		"id", resp.ID,
		"workload", resp.Workload,
		"engines", len(resp.Entries),
	)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) hardware(r *http.Request, name string) (*database.HardwarePreset, error) {
	hw, err := s.repo.GetHardwarePreset(r.Context(), name)
	if err != nil {
		return nil, fmt.Errorf("lookup hardware %s: %w", name, err)
	}
	if hw == nil {
		return nil, notFound("hardware preset", name)
	}
	return hw, nil
}

func (s *Server) engine(r *http.Request, name string) (*database.Engine, error) {
	e, err := s.repo.GetEngine(r.Context(), name)
	if err != nil {
		return nil, fmt.Errorf("lookup engine %s: %w", name, err)
	}
	if e == nil {
		return nil, notFound("engine", name)
	}
	return e, nil
}

func (s *Server) workload(r *http.Request, name string) (*database.Workload, error) {
	wl, err := s.repo.GetWorkload(r.Context(), name)
	if err != nil {
		return nil, fmt.Errorf("lookup workload %s: %w", name, err)
	}
	if wl == nil {
		return nil, notFound("workload", name)
	}
	return wl, nil
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeErr maps err to a response. Errors other than *apiError are
// reported as internal failures without their detail.
func writeErr(w http.ResponseWriter, err error) {
	var ae *apiError
	if !errors.As(err, &ae) {
		slog.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if len(ae.fields) == 0 {
		writeError(w, ae.code, ae.msg)
		return
	}
	writeJSON(w, ae.code, struct {
		Error  string                `json:"error"`
		Fields []*request.FieldError `json:"fields"`
	}{ae.msg, ae.fields})
}
