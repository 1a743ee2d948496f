package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ProtocolVersion is the (current, revision, age) triple a merchant backend
// advertises in its /config reply. Age counts how many earlier current values
// the backend still serves.
type ProtocolVersion struct {
	Current  uint32
	Revision uint32
	Age      uint32
}

// ParseProtocolVersion parses "current:revision:age". Each field must be a
// base-10 non-negative integer; anything else is ErrMalformedVersion.
func ParseProtocolVersion(raw string) (ProtocolVersion, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return ProtocolVersion{}, NewMalformedVersionError(raw)
	}

	var fields [3]uint32
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return ProtocolVersion{}, NewMalformedVersionError(raw)
		}
		fields[i] = uint32(n)
	}

	return ProtocolVersion{
		Current:  fields[0],
		Revision: fields[1],
		Age:      fields[2],
	}, nil
}

func (v ProtocolVersion) String() string {
	return fmt.Sprintf("%d:%d:%d", v.Current, v.Revision, v.Age)
}

// ClientVersion is the protocol version this client implements together with
// the number of earlier versions it remains compatible with.
type ClientVersion struct {
	Current uint32
	Age     uint32
}

type Compatibility int

const (
	Compatible Compatibility = iota
	// ClientTooOld: the backend requires a newer client than this one.
	ClientTooOld
	// BackendTooOld: the backend predates the oldest version the client speaks.
	BackendTooOld
)

func (c Compatibility) String() string {
	switch c {
	case Compatible:
		return "compatible"
	case ClientTooOld:
		return "client_too_old"
	case BackendTooOld:
		return "backend_too_old"
	default:
		return "unknown"
	}
}

// CompatibilityWith decides whether a client speaking the given version can
// talk to a backend advertising v.
func (v ProtocolVersion) CompatibilityWith(client ClientVersion) Compatibility {
	clientCurrent := int64(client.Current)

	if clientCurrent < int64(v.Current)-int64(v.Age) {
		return ClientTooOld
	}
	if clientCurrent-int64(client.Age) > int64(v.Current) {
		return BackendTooOld
	}
	return Compatible
}
