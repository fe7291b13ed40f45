package generate

import (
	"fmt"
	"go/format"

	"github.com/leizor/go-onebot-model-generator/pkg/util"
)

func formatSource(cb util.CodeBuffer) ([]byte, error) {
	src, err := format.Source(cb.Bytes())
	if err != nil {
		return nil, fmt.Errorf("problem formatting generated source: %w", err)
	}
	return src, nil
}
