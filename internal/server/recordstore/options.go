package recordstore

import (
	"fmt"

	"github.com/dmitrijs2005/foodstore/internal/logging"
)

// CorruptPolicy decides what a FileStore does with a collection file that
// exists but cannot be decoded.
type CorruptPolicy string

const (
	// PolicyDegrade treats the collection as empty on read. Before the next
	// append the unreadable file is moved aside, never overwritten.
	PolicyDegrade CorruptPolicy = "degrade"

	// PolicyStrict fails every read and append with ErrorStorage until the
	// file is repaired by an operator.
	PolicyStrict CorruptPolicy = "strict"
)

// ParseCorruptPolicy validates a policy name coming from configuration.
func ParseCorruptPolicy(s string) (CorruptPolicy, error) {
	switch CorruptPolicy(s) {
	case PolicyDegrade, "":
		return PolicyDegrade, nil
	case PolicyStrict:
		return PolicyStrict, nil
	default:
		return "", fmt.Errorf("unknown corrupt policy: %q (supported: degrade, strict)", s)
	}
}

type options struct {
	policy CorruptPolicy
	logger logging.Logger
}

func defaultOptions() options {
	return options{policy: PolicyDegrade, logger: logging.NewNopLogger()}
}

// Option configures a FileStore.
type Option func(*options)

// WithCorruptPolicy sets the policy for unparsable collection files.
func WithCorruptPolicy(p CorruptPolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithLogger sets the logger used for degradations and write failures.
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
