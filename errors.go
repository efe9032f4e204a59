package monica

import "fmt"

// StickyError is the sticky error flag a CropModule surfaces after an
// IrregularDevelopmentalStage anomaly (§7). The daily step itself never
// returns an error — this is consulted by the orchestrator/tests.
type StickyError struct {
	Kind    string
	Message string
	Stage   DevelopmentStage
}

func (e *StickyError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s at stage %d: %s", e.Kind, e.Stage, e.Message)
}

// setStickyError records the first anomaly seen; later anomalies are
// dropped without logging and do not overwrite the original cause until
// ClearError is called.
func (c *CropModule) setStickyError(kind, message string, stage DevelopmentStage) {
	if c.stickyError != nil {
		return
	}
	c.stickyError = &StickyError{Kind: kind, Message: message, Stage: stage}
}

// Error returns the crop's sticky error, if any (nil otherwise).
func (c *CropModule) Error() error {
	if c.stickyError == nil {
		return nil
	}
	return c.stickyError
}

// ClearError resets the sticky error flag; callers may use this between
// runs that reuse a CropModule value (the simulation itself never calls
// this internally).
func (c *CropModule) ClearError() {
	c.stickyError = nil
}
