// Package model は、アプリケーションのデータモデル定義を提供します。
package model

import (
	"errors"
	"time"
)

// Project は撮影案件（結婚式1件）を表すモデルです。
// Progress と Completed は Tasks から導出され、単独で更新されることはありません。
type Project struct {
	ID           ProjectID   `json:"id"`                     // 不変の識別子
	Name         string      `json:"name"`                   // 案件名
	Date         WeddingDate `json:"date"`                   // 挙式日
	Tasks        Tasks       `json:"tasks"`                  // タスクの完了状態
	Completed    bool        `json:"completed"`              // 全タスク完了かどうか
	Progress     int         `json:"progress"`               // 完了率 (0-100)
	CreatedAt    time.Time   `json:"createdAt"`              // 作成日時
	LastModified *time.Time  `json:"lastModified,omitempty"` // 最終タスク更新日時
}

// NewProject は新しいProjectインスタンスを作成します。
func NewProject(name, date string, now time.Time) (*Project, error) {
	projectName, err := NewProjectName(name)
	if err != nil {
		return nil, err
	}
	weddingDate, err := ParseWeddingDate(date)
	if err != nil {
		return nil, err
	}

	p := &Project{
		ID:        NewProjectID(),
		Name:      projectName.String(),
		Date:      weddingDate,
		CreatedAt: now,
	}
	p.recompute()
	return p, nil
}

// LoadProject は保存済みデータからProjectインスタンスを復元します。
// 導出値は保存値を信用せず、タスクから再計算します。
func LoadProject(id ProjectID, name string, date WeddingDate, tasks Tasks, createdAt time.Time, lastModified *time.Time) (*Project, error) {
	p := &Project{
		ID:           id,
		Name:         name,
		Date:         date,
		Tasks:        tasks,
		CreatedAt:    createdAt,
		LastModified: lastModified,
	}
	p.recompute()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate はプロジェクトのデータバリデーションを行います。
func (p *Project) Validate() error {
	if p.ID == "" {
		return errors.New("id is required")
	}
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.Date.IsZero() {
		return errors.New("date is required")
	}
	if p.CreatedAt.IsZero() {
		return errors.New("createdAt is required")
	}
	return nil
}

// SetTask はタスクの状態を更新し、導出値を再計算します。
// 戻り値は完了状態の遷移（未完了→完了、完了→未完了）を示します。
func (p *Project) SetTask(key TaskKey, done bool, now time.Time) (becameComplete, becameIncomplete bool, err error) {
	wasCompleted := p.Completed
	if err := p.Tasks.Set(key, done); err != nil {
		return false, false, err
	}
	p.recompute()

	// 値が変わらない場合も最終更新日時は記録する
	modified := now
	p.LastModified = &modified

	return !wasCompleted && p.Completed, wasCompleted && !p.Completed, nil
}

// recompute は Tasks 全体から Progress と Completed を算出し直します。
func (p *Project) recompute() {
	done := p.Tasks.CompletedCount()
	p.Progress = Percent(done, TaskCount)
	p.Completed = done == TaskCount
}

// Snapshot は呼び出し側に渡す読み取り専用のコピーを返します。
func (p *Project) Snapshot() Snapshot {
	s := Snapshot{
		ID:            p.ID,
		Name:          p.Name,
		Date:          p.Date,
		DateFormatted: p.Date.Formatted(),
		Tasks:         p.Tasks,
		Completed:     p.Completed,
		Progress:      p.Progress,
		CreatedAt:     p.CreatedAt,
	}
	if p.LastModified != nil {
		lm := *p.LastModified
		s.LastModified = &lm
	}
	return s
}

// Snapshot はある時点のプロジェクトの値です。
type Snapshot struct {
	ID            ProjectID   `json:"id" yaml:"id"`
	Name          string      `json:"name" yaml:"name"`
	Date          WeddingDate `json:"date" yaml:"date"`
	DateFormatted string      `json:"dateFormatted" yaml:"dateFormatted"`
	Tasks         Tasks       `json:"tasks" yaml:"tasks"`
	Completed     bool        `json:"completed" yaml:"completed"`
	Progress      int         `json:"progress" yaml:"progress"`
	CreatedAt     time.Time   `json:"createdAt" yaml:"createdAt"`
	LastModified  *time.Time  `json:"lastModified,omitempty" yaml:"lastModified,omitempty"`
}

// TaskUpdate はタスク更新の結果です。
type TaskUpdate struct {
	Project          Snapshot `json:"project" yaml:"project"`
	BecameComplete   bool     `json:"becameComplete" yaml:"becameComplete"`
	BecameIncomplete bool     `json:"becameIncomplete" yaml:"becameIncomplete"`
}

// Stats は全プロジェクトの集計値です。
type Stats struct {
	TotalProjects       int `json:"totalProjects" yaml:"totalProjects"`
	CompletedProjects   int `json:"completedProjects" yaml:"completedProjects"`
	CompletedPercentage int `json:"completedPercentage" yaml:"completedPercentage"`
}
