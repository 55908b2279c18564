package http

import (
	"errors"
	"net/http"

	"github.com/avoronov/go-chore-sync/internal/store"
)

var errorStatusMap = map[error]int{
	store.ErrCorruptDocument:      http.StatusInternalServerError,
	store.ErrDocumentNotPersisted: http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
