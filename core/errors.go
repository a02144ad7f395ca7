package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrUnauthorized caller is not the registry owner
	ErrUnauthorized ErrorCode = 100001
	// ErrNotWhitelisted requester is not whitelisted
	ErrNotWhitelisted ErrorCode = 100002

	// ErrDuplicateRequest a pending or fulfilled request exists for the key
	ErrDuplicateRequest ErrorCode = 100100
	// ErrAlreadyCommitted a validation record exists for the key
	ErrAlreadyCommitted ErrorCode = 100101
	// ErrNoSuchRequest no pending request for the key
	ErrNoSuchRequest ErrorCode = 100102
	// ErrAlreadyWhitelisted identity already whitelisted
	ErrAlreadyWhitelisted ErrorCode = 100103
	// ErrIdentityNotFound identity not whitelisted
	ErrIdentityNotFound ErrorCode = 100104

	// ErrSignatureMismatch recovered signer differs from the trusted signer
	ErrSignatureMismatch ErrorCode = 100200
	// ErrNoMatchingRequest answer without a prior accepted request
	ErrNoMatchingRequest ErrorCode = 100201
	// ErrInvalidPair malformed asset pair
	ErrInvalidPair ErrorCode = 100202
	// ErrFutureTimestamp timestamp beyond clock-skew tolerance
	ErrFutureTimestamp ErrorCode = 100203
	// ErrInvalidPrice invalid price
	ErrInvalidPrice ErrorCode = 100204

	// ErrPriceNotFound no validated price for the key
	ErrPriceNotFound ErrorCode = 100300
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}
