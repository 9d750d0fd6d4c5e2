package llm

import "context"

// UnconfiguredProvider stands in for a backend whose credentials are
// missing, so the service can still start and report the problem on
// every call instead of refusing to boot.
type UnconfiguredProvider struct {
	Err *ErrConfiguration
}

// Unconfigured returns a provider that fails every call with err.
func Unconfigured(err *ErrConfiguration) *UnconfiguredProvider {
	return &UnconfiguredProvider{Err: err}
}

func (u *UnconfiguredProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	return nil, u.Err
}

func (u *UnconfiguredProvider) ModelID() string { return "unconfigured" }
