//go:build !darwin || !cgo

package notify

// Distributed needs macOS and cgo.
func Distributed(name string) (Subscription, error) {
	return nil, ErrUnsupported
}
