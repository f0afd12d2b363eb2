package grants

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"

	can "github.com/VeselinReljic/go-can"
)

// Wire format, version 1, all integers big-endian:
//
//	[1]  version
//	[2]  module count
//	per module, sorted by name:
//	  [2+n] name
//	  [2]   ability count, then per ability sorted by name: [2+n] name, [1] grant flag
//	  [2]   check count, then per check sorted by name: [2+n] name
//
// Checks cross the wire as names only; DecodeGrants rebinds predicates from
// a Registry.
const codecVersion = 0x01

var (
	// ErrInvalidEncoding is returned by DecodeGrants for truncated or
	// malformed input.
	ErrInvalidEncoding = errors.New("invalid grants encoding")
	// ErrUnsupportedVersion is returned by DecodeGrants for a version byte
	// this package does not understand.
	ErrUnsupportedVersion = errors.New("unsupported grants encoding version")
)

// EncodeGrants serializes the ability grants and check names of p into the
// compact wire form used by the claims and source packages. Output is
// deterministic: modules, abilities, and checks are sorted by name.
func EncodeGrants(p can.Permissions) ([]byte, error) {
	if len(p) > math.MaxUint16 {
		return nil, errors.New("too many modules")
	}

	buf := new(bytes.Buffer)
	buf.WriteByte(codecVersion)
	writeUint16(buf, uint16(len(p)))

	moduleNames := make([]string, 0, len(p))
	for name := range p {
		moduleNames = append(moduleNames, name)
	}
	sort.Strings(moduleNames)

	for _, name := range moduleNames {
		mod := p[name]

		if err := writeString(buf, name); err != nil {
			return nil, err
		}

		if len(mod.Abilities) > math.MaxUint16 {
			return nil, fmt.Errorf("too many abilities in module %q", name)
		}
		writeUint16(buf, uint16(len(mod.Abilities)))

		abilityNames := make([]string, 0, len(mod.Abilities))
		for a := range mod.Abilities {
			abilityNames = append(abilityNames, a)
		}
		sort.Strings(abilityNames)

		for _, a := range abilityNames {
			if err := writeString(buf, a); err != nil {
				return nil, err
			}
			if mod.Abilities[a] {
				buf.WriteByte(1)
			} else {
				buf.WriteByte(0)
			}
		}

		if len(mod.Checks) > math.MaxUint16 {
			return nil, fmt.Errorf("too many checks in module %q", name)
		}
		writeUint16(buf, uint16(len(mod.Checks)))

		checkNames := make([]string, 0, len(mod.Checks))
		for c := range mod.Checks {
			checkNames = append(checkNames, c)
		}
		sort.Strings(checkNames)

		for _, c := range checkNames {
			if err := writeString(buf, c); err != nil {
				return nil, err
			}
		}
	}

	return buf.Bytes(), nil
}

// DecodeGrants parses the wire form back into a can.Permissions value,
// rebinding each encoded check name to its predicate in registry. A check
// name without a registered predicate is a decode error; registry may be nil
// only when the input declares no checks.
func DecodeGrants(data []byte, registry *Registry) (can.Permissions, error) {
	r := &byteReader{data: data}

	version, err := r.readByte()
	if err != nil {
		return nil, err
	}
	if version != codecVersion {
		return nil, ErrUnsupportedVersion
	}

	moduleCount, err := r.readUint16()
	if err != nil {
		return nil, err
	}

	perms := make(can.Permissions, moduleCount)

	for i := 0; i < int(moduleCount); i++ {
		name, err := r.readString()
		if err != nil {
			return nil, err
		}

		abilityCount, err := r.readUint16()
		if err != nil {
			return nil, err
		}

		mod := can.PermissionModule{
			Abilities: make(can.Abilities, abilityCount),
		}

		for j := 0; j < int(abilityCount); j++ {
			ability, err := r.readString()
			if err != nil {
				return nil, err
			}
			flag, err := r.readByte()
			if err != nil {
				return nil, err
			}
			mod.Abilities[ability] = flag == 1
		}

		checkCount, err := r.readUint16()
		if err != nil {
			return nil, err
		}

		if checkCount > 0 {
			if registry == nil {
				return nil, errors.New("checks encoded without a registry")
			}
			mod.Checks = make(can.Checks, checkCount)
			for j := 0; j < int(checkCount); j++ {
				check, err := r.readString()
				if err != nil {
					return nil, err
				}
				fn, ok := registry.Get(check)
				if !ok {
					return nil, fmt.Errorf("check not registered: %q in module %q", check, name)
				}
				mod.Checks[check] = fn
			}
		}

		perms[name] = mod
	}

	if !r.empty() {
		return nil, ErrInvalidEncoding
	}

	return perms, nil
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeString(buf *bytes.Buffer, s string) error {
	if len(s) > math.MaxUint16 {
		return errors.New("name too long")
	}
	writeUint16(buf, uint16(len(s)))
	buf.WriteString(s)
	return nil
}

type byteReader struct {
	data []byte
	off  int
}

func (r *byteReader) readByte() (byte, error) {
	if r.off >= len(r.data) {
		return 0, ErrInvalidEncoding
	}
	b := r.data[r.off]
	r.off++
	return b, nil
}

func (r *byteReader) readUint16() (uint16, error) {
	if r.off+2 > len(r.data) {
		return 0, ErrInvalidEncoding
	}
	v := binary.BigEndian.Uint16(r.data[r.off : r.off+2])
	r.off += 2
	return v, nil
}

func (r *byteReader) readString() (string, error) {
	n, err := r.readUint16()
	if err != nil {
		return "", err
	}
	if r.off+int(n) > len(r.data) {
		return "", ErrInvalidEncoding
	}
	s := string(r.data[r.off : r.off+int(n)])
	r.off += int(n)
	return s, nil
}

func (r *byteReader) empty() bool {
	return r.off == len(r.data)
}
