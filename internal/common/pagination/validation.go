package pagination

import "fmt"

// Validate validates pagination parameters against the configuration.
// Returns an error if:
//   - page is less than 1
//   - size is less than 1 or greater than config.MaxSize
func (p Params) Validate(config Config) error {
	if p.Page < 1 {
		return fmt.Errorf("page must be a positive integer")
	}
	if p.Size < 1 || p.Size > config.MaxSize {
		return fmt.Errorf("size must be between 1 and %d", config.MaxSize)
	}
	return nil
}

// WithDefaults applies default values from config to Params.
//
// Rules:
//   - If page <= 0, set to config.DefaultPage
//   - If size <= 0, set to config.DefaultSize
//   - If size > config.MaxSize, cap to config.MaxSize
func (p Params) WithDefaults(config Config) Params {
	if p.Page <= 0 {
		p.Page = config.DefaultPage
	}
	if p.Size <= 0 {
		p.Size = config.DefaultSize
	}
	if p.Size > config.MaxSize {
		p.Size = config.MaxSize
	}
	return p
}
