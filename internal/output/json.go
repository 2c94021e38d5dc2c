package output

import (
	"encoding/json"

	"github.com/hamed0406/nethealth/internal/domain"
)

func RenderJSON(result domain.CheckResult) (string, error) {
	b, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
