// Package storage содержит ошибки слоя хранения, общие для репозиториев.
package storage

import "errors"

var (
	// ErrNotFound возвращается, когда запись отсутствует.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists возвращается при нарушении уникальности.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInvalidPattern возвращается, когда база отвергла регулярное выражение.
	ErrInvalidPattern = errors.New("invalid regular expression")
)
