// Package model は、アプリケーションのデータモデル定義を提供します。
package model

import (
	"errors"
	"fmt"
)

// センチネルエラー
var (
	// ErrProjectNotFound は指定されたIDのプロジェクトが存在しない場合のエラーです。
	ErrProjectNotFound = errors.New("project not found")
	// ErrPersistence は永続化層の失敗全般を表します。
	ErrPersistence = errors.New("persistence failure")
	// ErrQuotaExceeded は保存領域が不足している場合のエラーです。
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// ValidationError はバリデーションエラーを表す型
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError はValidationErrorを生成するヘルパー関数
func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// NotFoundError は未知のプロジェクトIDが指定された場合のエラーです。
type NotFoundError struct {
	ID ProjectID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("project %q not found", string(e.ID))
}

// Unwrap は errors.Is(err, ErrProjectNotFound) を成立させます。
func (e *NotFoundError) Unwrap() error {
	return ErrProjectNotFound
}

// InvalidTaskKeyError は固定の4タスク以外のキーが指定された場合のエラーです。
type InvalidTaskKeyError struct {
	Key string
}

func (e *InvalidTaskKeyError) Error() string {
	return fmt.Sprintf("invalid task key %q: must be one of %v", e.Key, AllTaskKeys)
}

// CorruptDataError は保存済みデータが読み取れない場合の警告です。
// ストアは空のコレクションで起動を継続します。
type CorruptDataError struct {
	Slot string
	Err  error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt data in slot %q: %v", e.Slot, e.Err)
}

func (e *CorruptDataError) Unwrap() error {
	return e.Err
}

// PersistenceError は読み書きの失敗を表します。
type PersistenceError struct {
	Op   string // "load" または "save"
	Slot string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s slot %q: %v", e.Op, e.Slot, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

// QuotaExceededError は保存領域の上限を超えた場合のエラーです。
type QuotaExceededError struct {
	Slot  string
	Size  int // 0 の場合はバックエンドが上限を報告したことを示す
	Limit int
	Err   error
}

func (e *QuotaExceededError) Error() string {
	if e.Size > 0 {
		return fmt.Sprintf("slot %q: payload of %d bytes exceeds quota of %d bytes", e.Slot, e.Size, e.Limit)
	}
	return fmt.Sprintf("slot %q: storage is full: %v", e.Slot, e.Err)
}

func (e *QuotaExceededError) Unwrap() []error {
	errs := []error{ErrPersistence, ErrQuotaExceeded}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
