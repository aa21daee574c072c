// Package api はreelbookのAPIサーバー実装を提供します。
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/stsysd/reelbook/chart"
	"github.com/stsysd/reelbook/config"
	"github.com/stsysd/reelbook/model"
	"github.com/stsysd/reelbook/present"
	"github.com/stsysd/reelbook/tracker"
)

// Server はAPIサーバーの構造体です。
type Server struct {
	router *http.ServeMux
	store  *tracker.Store
	config *config.Config
	logger *log.Logger
}

// ErrorResponse はエラーレスポンスの構造体です。
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// writeJSONError はJSON形式でエラーレスポンスを返却します。
func (s *Server) writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	resp := ErrorResponse{
		Error: message,
		Code:  statusCode,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("Error encoding error response", "err", err)
	}
}

// writeJSON はJSON形式でレスポンスを返却します。
func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Error encoding response", "err", err)
	}
}

// NewServer は新しいAPIサーバーインスタンスを生成します。
func NewServer(store *tracker.Store, config *config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		router: http.NewServeMux(),
		store:  store,
		config: config,
		logger: logger,
	}
	s.routes()
	return s
}

// routes はAPIエンドポイントのルーティングを設定します。
func (s *Server) routes() {
	// ヘルスチェックエンドポイントは認証不要
	s.router.HandleFunc("GET /healthz", s.handleHealthCheck)

	// すべての保護されたエンドポイントをまずセキュアなルータに登録
	securedHandler := http.NewServeMux()

	// Project endpoints
	securedHandler.HandleFunc("GET /api/v0/p", s.handleListProjects)
	securedHandler.HandleFunc("POST /api/v0/p", s.handleCreateProject)
	securedHandler.HandleFunc("GET /api/v0/p/{project_id}", s.handleGetProject)

	// Task endpoints
	securedHandler.HandleFunc("PUT /api/v0/p/{project_id}/t/{task}", s.handleSetTask)
	securedHandler.HandleFunc("GET /api/v0/tasks", s.handleListTasks)

	// Stats endpoint
	securedHandler.HandleFunc("GET /api/v0/stats", s.handleGetStats)

	// 認証ミドルウェアを適用し、メインルータにマウント
	s.router.Handle("/api/", s.authMiddleware(securedHandler))

	// Chart endpoints - support both with and without .svg extension
	s.router.HandleFunc("GET /chart.svg", s.handleGetChart)
	s.router.HandleFunc("GET /chart", s.handleGetChart)
	s.router.HandleFunc("GET /progress.svg", s.handleGetProgress)
	s.router.HandleFunc("GET /calendar.svg", s.handleGetCalendar)
	s.router.HandleFunc("GET /p/{project_id}/progress.svg", s.handleGetProjectProgress)
	s.router.HandleFunc("GET /p/{project_id}/progress", s.handleGetProjectProgress)
}

// ServeHTTP はServer構造体をhttp.Handlerとして実装します。
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// routesに設定されたルーティングを使用する
	s.logRequests(s.router).ServeHTTP(w, r)
}

// handleHealthCheck はヘルスチェックエンドポイントのハンドラーです。
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListProjectsResponse はプロジェクト一覧取得のレスポンスです。
type ListProjectsResponse struct {
	Items []model.Snapshot `json:"items"`
}

// handleListProjects はプロジェクト一覧取得をハンドリングします。
// 一覧は挙式日の昇順に並びます。
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	response := &ListProjectsResponse{
		Items: s.store.Projects(),
	}
	// 空配列を返すためにnilチェック
	if response.Items == nil {
		response.Items = []model.Snapshot{}
	}

	s.writeJSON(w, http.StatusOK, response)
}

// CreateProjectParams represents parameters for creating a project.
type CreateProjectParams struct {
	Name string
	Date string
}

// NewCreateProjectParams creates parameters for project creation from HTTP request.
func NewCreateProjectParams(r *http.Request) (*CreateProjectParams, error) {
	var requestBody struct {
		Name string `json:"name"`
		Date string `json:"date"`
	}

	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	return &CreateProjectParams{
		Name: requestBody.Name,
		Date: requestBody.Date,
	}, nil
}

// CreateProjectResponse はプロジェクト作成のレスポンスです。
type CreateProjectResponse struct {
	model.Snapshot
	Warnings []present.Warning `json:"warnings,omitempty"`
}

// handleCreateProject はプロジェクト作成をハンドリングします。
func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	params, err := NewCreateProjectParams(r)
	if err != nil {
		s.writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// 保存時の警告はリクエスト単位で収集する
	recorder := &present.Recorder{}
	ctx := tracker.ContextWithPresenter(r.Context(), recorder)

	id, err := s.store.Create(ctx, params.Name, params.Date)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			s.writeJSONError(w, fmt.Sprintf("Invalid project data: %v", err), http.StatusBadRequest)
		} else {
			s.writeJSONError(w, fmt.Sprintf("Failed to create project: %v", err), http.StatusInternalServerError)
		}
		return
	}

	project, ok := s.store.FindByID(id)
	if !ok {
		s.writeJSONError(w, "Failed to create project", http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusCreated, &CreateProjectResponse{
		Snapshot: project,
		Warnings: problems(recorder),
	})
}

// GetProjectParams represents parameters for getting project info.
type GetProjectParams struct {
	ProjectID model.ProjectID
}

// NewGetProjectParams creates parameters for project retrieval from HTTP request.
func NewGetProjectParams(r *http.Request) (*GetProjectParams, error) {
	projectID, err := model.ParseProjectID(r.PathValue("project_id"))
	if err != nil {
		return nil, fmt.Errorf("invalid project_id: %w", err)
	}

	return &GetProjectParams{
		ProjectID: projectID,
	}, nil
}

// handleGetProject はプロジェクト取得をハンドリングします。
func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	params, err := NewGetProjectParams(r)
	if err != nil {
		s.writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	project, ok := s.store.FindByID(params.ProjectID)
	if !ok {
		s.writeJSONError(w, fmt.Sprintf("Project with ID %s not found", params.ProjectID), http.StatusNotFound)
		return
	}

	s.writeJSON(w, http.StatusOK, project)
}

// SetTaskParams represents parameters for updating a task.
type SetTaskParams struct {
	ProjectID model.ProjectID
	Task      string
	Done      bool
}

// NewSetTaskParams creates parameters for a task update from HTTP request.
func NewSetTaskParams(r *http.Request) (*SetTaskParams, error) {
	projectID, err := model.ParseProjectID(r.PathValue("project_id"))
	if err != nil {
		return nil, fmt.Errorf("invalid project_id: %w", err)
	}

	var requestBody struct {
		Done *bool `json:"done"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	if requestBody.Done == nil {
		return nil, errors.New("done is required")
	}

	return &SetTaskParams{
		ProjectID: projectID,
		Task:      r.PathValue("task"),
		Done:      *requestBody.Done,
	}, nil
}

// SetTaskResponse はタスク更新のレスポンスです。
type SetTaskResponse struct {
	model.TaskUpdate
	Warnings []present.Warning `json:"warnings,omitempty"`
}

// handleSetTask はタスク状態の更新をハンドリングします。
func (s *Server) handleSetTask(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	params, err := NewSetTaskParams(r)
	if err != nil {
		s.writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	recorder := &present.Recorder{}
	ctx := tracker.ContextWithPresenter(r.Context(), recorder)

	update, err := s.store.SetTask(ctx, params.ProjectID, params.Task, params.Done)
	if err != nil {
		var invalid *model.InvalidTaskKeyError
		switch {
		case errors.Is(err, model.ErrProjectNotFound):
			s.writeJSONError(w, fmt.Sprintf("Project with ID %s not found", params.ProjectID), http.StatusNotFound)
		case errors.As(err, &invalid):
			s.writeJSONError(w, err.Error(), http.StatusBadRequest)
		default:
			s.writeJSONError(w, fmt.Sprintf("Failed to update task: %v", err), http.StatusInternalServerError)
		}
		return
	}

	s.writeJSON(w, http.StatusOK, &SetTaskResponse{
		TaskUpdate: update,
		Warnings:   problems(recorder),
	})
}

// TaskInfo はタスクの表示情報です。
type TaskInfo struct {
	Key   model.TaskKey `json:"key"`
	Label string        `json:"label"`
}

// handleListTasks はタスクの一覧を設定されたロケールのラベル付きで返します。
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tag := s.config.Language()
	tasks := make([]TaskInfo, 0, len(model.AllTaskKeys))
	for _, key := range model.AllTaskKeys {
		tasks = append(tasks, TaskInfo{Key: key, Label: key.Label(tag)})
	}
	s.writeJSON(w, http.StatusOK, map[string][]TaskInfo{"items": tasks})
}

// handleGetStats は全体の完了率を返します。
func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.GlobalStats())
}

// handleGetChart は全体の完了率のドーナツグラフを返却するハンドラーです。
func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	opts := chart.DefaultDoughnutOptions()
	opts.Title = "Project Completion"

	svg := chart.GenerateDoughnutSVG(s.store.GlobalStats(), opts)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(svg))
}

// handleGetProgress は全プロジェクトの進捗バーを返却するハンドラーです。
func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	svg := chart.GenerateProgressBarsSVG(s.store.Projects(), nil)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(svg))
}

// handleGetCalendar は指定年の挙式日カレンダーを返却するハンドラーです。
// year パラメータを省略した場合は今年になります。
func (s *Server) handleGetCalendar(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 || y > 9999 {
			http.Error(w, "Invalid year parameter", http.StatusBadRequest)
			return
		}
		year = y
	}

	opts := chart.DefaultCalendarOptions()
	opts.Title = fmt.Sprintf("Weddings in %d", year)
	svg := chart.GenerateCalendarSVG(s.store.Projects(), year, opts)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(svg))
}

// handleGetProjectProgress は指定プロジェクトの進捗バーを返却するハンドラーです。
func (s *Server) handleGetProjectProgress(w http.ResponseWriter, r *http.Request) {
	params, err := NewGetProjectParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	project, ok := s.store.FindByID(params.ProjectID)
	if !ok {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}

	opts := chart.DefaultBarOptions()
	opts.Title = project.Name
	svg := chart.GenerateProgressBarsSVG([]model.Snapshot{project}, opts)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(svg))
}

// problems はリクエスト中に発生した警告とエラーを返します。
func problems(r *present.Recorder) []present.Warning {
	warnings := r.Warnings(tracker.SeverityWarning, tracker.SeverityError)
	if len(warnings) == 0 {
		return nil
	}
	return warnings
}

// Run はサーバーを指定されたアドレスで起動し、ctx がキャンセルされると停止します。
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("Server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
