package providers

import (
	"fmt"

	"github.com/gookit/validate"

	"linguactl/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	if err := ValidateStruct(cv.conf); err != nil {
		return err
	}

	// conditional fields the tag language cannot express
	if cv.conf.Snapshot.Enabled {
		if cv.conf.Snapshot.FilePath == "" {
			return fmt.Errorf("snapshot.filePath is required when snapshot.enabled")
		}
		if cv.conf.Snapshot.Interval <= 0 {
			return fmt.Errorf("snapshot.interval is required when snapshot.enabled")
		}
	}
	if cv.conf.Cache.Enabled && cv.conf.Cache.Size <= 0 {
		return fmt.Errorf("cache.size must be positive when cache.enabled")
	}
	if cv.conf.Metrics.Enabled && cv.conf.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr is required when metrics.enabled")
	}

	return nil
}

// ValidateStruct runs gookit rules over any tagged struct. It is shared by
// the config validator and the request validation in the services layer.
func ValidateStruct(s interface{}) error {
	v := validate.Struct(s)
	if !v.Validate() {
		return v.Errors.OneError()
	}
	return nil
}
