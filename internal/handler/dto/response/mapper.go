package response

import (
	"log/slog"

	"github.com/jinzhu/copier"
)

// copyView maps a read model onto its response DTO. The struct shapes are
// fixed at compile time, so a failure is a programming error; log it rather
// than fail the request over an incomplete body.
func copyView(dst, src any) {
	if err := copier.Copy(dst, src); err != nil {
		slog.Error("failed to map response view", "error", err)
	}
}
