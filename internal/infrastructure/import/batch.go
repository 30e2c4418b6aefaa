package csvimport

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateBatchID produces an import batch identifier of the form
// BATCH_YYYYMMDD_HHMMSS_xxxxxxxx. The random suffix keeps IDs unique
// when several imports start within the same second.
func GenerateBatchID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("BATCH_%s_%s", now.Format("20060102_150405"), suffix)
}
