package spreadsheet

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/amsterdam/sensorregister/internal/registration"
	"github.com/amsterdam/sensorregister/internal/tabular"
)

var ErrInvalidConfig = errors.New("invalid parser config")

// Config holds the form settings the parsers depend on.
type Config struct {
	// Separator joins multi-valued cells such as themes and regions.
	Separator string
	// MaxSensors is the number of sensor blocks in the compact form.
	MaxSensors int
}

func DefaultConfig() Config {
	return Config{Separator: ";", MaxSensors: 5}
}

func (c Config) Validate() error {
	if c.Separator == "" {
		return fmt.Errorf("%w: separator is empty", ErrInvalidConfig)
	}
	if c.MaxSensors < 1 {
		return fmt.Errorf("%w: max sensors must be positive", ErrInvalidConfig)
	}
	return nil
}

// Form identifies a workbook layout.
type Form string

const (
	BulkForm    Form = "bulk"
	CompactForm Form = "compact"
)

// Detect picks the bulk form when the workbook has a separate owner sheet.
func Detect(wb Workbook) Form {
	if hasSheet(wb, OwnerSheet) {
		return BulkForm
	}
	return CompactForm
}

// Parse checks the headers of wb and returns its sensor records. Header
// errors are returned before any record is produced.
func Parse(wb Workbook, cfg Config) (iter.Seq[registration.SensorData], error) {
	if Detect(wb) == BulkForm {
		return ParseBulk(wb, cfg)
	}
	return ParseCompact(wb, cfg)
}

// header returns the formatted first n cells of row.
func header(row []any, n int) []string {
	fields := make([]string, 0, min(n, len(row)))
	for i, cell := range row {
		if i >= n {
			break
		}
		fields = append(fields, tabular.Format(cell))
	}
	return fields
}

func joinNonEmpty(sep string, values ...string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, sep)
}
