package store

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stsysd/reelbook/model"
)

//go:embed schema/projects.schema.json
var projectsSchema string

// DefaultSlotName はプロジェクト一覧を保存するスロット名です。
const DefaultSlotName = "weddingProjects"

// DefaultQuotaBytes はペイロードサイズの既定の上限です。
const DefaultQuotaBytes = 5 * 1024 * 1024

// record は永続化フォーマットにおける1件のプロジェクトです。
type record struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Date          string      `json:"date"`
	DateFormatted string      `json:"dateFormatted"`
	Tasks         model.Tasks `json:"tasks"`
	Completed     bool        `json:"completed"`
	Progress      int         `json:"progress"`
	CreatedAt     string      `json:"createdAt"`
	LastModified  string      `json:"lastModified,omitempty"`
}

// Adapter はプロジェクト一覧をスロットに読み書きする永続化アダプタです。
// スロット層のエラーはすべて model のエラー分類に変換され、panic は境界を越えません。
type Adapter struct {
	slot   Slot
	name   string
	quota  int
	schema *jsonschema.Schema
}

// NewAdapter は新しいAdapterを作成します。quotaBytes が0以下の場合は上限なしです。
func NewAdapter(slot Slot, name string, quotaBytes int) (*Adapter, error) {
	if name == "" {
		name = DefaultSlotName
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("projects.schema.json", strings.NewReader(projectsSchema)); err != nil {
		return nil, fmt.Errorf("failed to add projects schema: %w", err)
	}
	schema, err := compiler.Compile("projects.schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile projects schema: %w", err)
	}

	return &Adapter{
		slot:   slot,
		name:   name,
		quota:  quotaBytes,
		schema: schema,
	}, nil
}

// SlotName はスロット名を返します。
func (a *Adapter) SlotName() string {
	return a.name
}

// Load はスロットからプロジェクト一覧を読み込みます。
// 未保存の場合は空のスライスを返し、破損データの場合は空のスライスと
// CorruptDataError を返します。
func (a *Adapter) Load(ctx context.Context) ([]model.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, &model.PersistenceError{Op: "load", Slot: a.name, Err: err}
	}

	payload, err := a.slot.Get(ctx, a.name)
	if errors.Is(err, ErrSlotEmpty) {
		return []model.Project{}, nil
	}
	if err != nil {
		return []model.Project{}, &model.PersistenceError{Op: "load", Slot: a.name, Err: err}
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return []model.Project{}, nil
	}

	projects, err := a.decode(payload)
	if err != nil {
		return []model.Project{}, &model.CorruptDataError{Slot: a.name, Err: err}
	}
	return projects, nil
}

// decode はペイロードを検証し、プロジェクト一覧に変換します。
func (a *Adapter) decode(payload []byte) ([]model.Project, error) {
	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := a.schema.Validate(doc); err != nil {
		return nil, schemaError(err)
	}

	var records []record
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("invalid project records: %w", err)
	}

	projects := make([]model.Project, 0, len(records))
	seen := make(map[model.ProjectID]bool, len(records))
	for i, rec := range records {
		p, err := rec.toProject()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("record %d: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = true
		projects = append(projects, *p)
	}
	return projects, nil
}

// schemaError はスキーマ違反のうち最初の原因を読みやすい形にします。
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	location := ve.InstanceLocation
	if location == "" {
		location = "/"
	}
	return fmt.Errorf("schema violation at %s: %s", location, ve.Message)
}

// Save はプロジェクト一覧をスロットに保存します。
func (a *Adapter) Save(ctx context.Context, projects []model.Project) error {
	if err := ctx.Err(); err != nil {
		return &model.PersistenceError{Op: "save", Slot: a.name, Err: err}
	}

	records := make([]record, 0, len(projects))
	for i := range projects {
		records = append(records, newRecord(&projects[i]))
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return &model.PersistenceError{Op: "save", Slot: a.name, Err: err}
	}

	if a.quota > 0 && len(payload) > a.quota {
		return &model.QuotaExceededError{Slot: a.name, Size: len(payload), Limit: a.quota}
	}

	if err := a.slot.Put(ctx, a.name, payload); err != nil {
		if errors.Is(err, ErrBackendFull) {
			return &model.QuotaExceededError{Slot: a.name, Limit: a.quota, Err: err}
		}
		return &model.PersistenceError{Op: "save", Slot: a.name, Err: err}
	}
	return nil
}

func newRecord(p *model.Project) record {
	rec := record{
		ID:            p.ID.String(),
		Name:          p.Name,
		Date:          p.Date.String(),
		DateFormatted: p.Date.Formatted(),
		Tasks:         p.Tasks,
		Completed:     p.Completed,
		Progress:      p.Progress,
		CreatedAt:     formatTimestamp(p.CreatedAt),
	}
	if p.LastModified != nil {
		rec.LastModified = formatTimestamp(*p.LastModified)
	}
	return rec
}

func (rec record) toProject() (*model.Project, error) {
	date, err := model.ParseWeddingDate(rec.Date)
	if err != nil {
		return nil, err
	}

	createdAt, err := time.Parse(time.RFC3339, rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse createdAt: %w", err)
	}

	var lastModified *time.Time
	if rec.LastModified != "" {
		t, err := time.Parse(time.RFC3339, rec.LastModified)
		if err != nil {
			return nil, fmt.Errorf("failed to parse lastModified: %w", err)
		}
		lastModified = &t
	}

	return model.LoadProject(model.ProjectID(rec.ID), rec.Name, date, rec.Tasks, createdAt, lastModified)
}

// formatTimestamp は日時をUTCのRFC3339形式（ナノ秒精度）に統一します。
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
