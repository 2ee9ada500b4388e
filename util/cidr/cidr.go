/*
Copyright 2024 The akstemplate Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package cidr implements IPv4 address block arithmetic: parsing,
// containment checks and offset-address derivation.
package cidr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidFormat is returned when a string is not a valid IPv4 CIDR.
	ErrInvalidFormat = errors.New("invalid CIDR format")

	// ErrOutOfRange is returned when a derived address falls outside the block.
	ErrOutOfRange = errors.New("address offset out of range")
)

// CIDR is an IPv4 address block. The network address is always held in
// canonical form: masked by the prefix length.
type CIDR struct {
	addr   uint32
	prefix int
}

// Parse parses "a.b.c.d/n" with each octet in [0,255] and n in [0,32].
// Non-canonical network addresses are accepted and canonicalized.
func Parse(text string) (CIDR, error) {
	ip, lengthStr, found := strings.Cut(text, "/")
	if !found {
		return CIDR{}, errors.Wrapf(ErrInvalidFormat, "%q is not of the form a.b.c.d/n", text)
	}

	prefix, err := strconv.Atoi(lengthStr)
	if err != nil || prefix < 0 || prefix > 32 || !isCanonicalInt(lengthStr) {
		return CIDR{}, errors.Wrapf(ErrInvalidFormat, "%q has an invalid prefix length", text)
	}

	octets := strings.Split(ip, ".")
	if len(octets) != 4 {
		return CIDR{}, errors.Wrapf(ErrInvalidFormat, "%q is not of the form a.b.c.d/n", text)
	}

	var addr uint32
	for _, octet := range octets {
		v, err := strconv.Atoi(octet)
		if err != nil || v < 0 || v > 255 || !isCanonicalInt(octet) {
			return CIDR{}, errors.Wrapf(ErrInvalidFormat, "%q has an octet outside [0,255]", text)
		}
		addr = addr<<8 | uint32(v)
	}

	return CIDR{
		addr:   addr & mask(prefix),
		prefix: prefix,
	}, nil
}

// isCanonicalInt rejects leading zeros, signs and whitespace that
// strconv.Atoi would otherwise tolerate.
func isCanonicalInt(s string) bool {
	v, err := strconv.Atoi(s)
	return err == nil && s == strconv.Itoa(v)
}

func mask(prefix int) uint32 {
	if prefix == 0 {
		return 0
	}
	return ^uint32(0) << (32 - prefix)
}

// String returns the canonical "a.b.c.d/n" representation. It round-trips
// with Parse.
func (c CIDR) String() string {
	return fmt.Sprintf("%s/%d", formatAddr(c.addr), c.prefix)
}

// Prefix returns the prefix length of the block.
func (c CIDR) Prefix() int {
	return c.prefix
}

// NetworkAddress returns the dotted-quad network address of the block.
func (c CIDR) NetworkAddress() string {
	return formatAddr(c.addr)
}

// OffsetAddress returns the dotted-quad address that is the network address
// plus n. It fails with ErrOutOfRange when the result exceeds the block.
func (c CIDR) OffsetAddress(n uint32) (string, error) {
	size := uint64(1) << (32 - c.prefix)
	if uint64(n) >= size {
		return "", errors.Wrapf(ErrOutOfRange, "offset %d exceeds %s", n, c)
	}
	return formatAddr(c.addr + n), nil
}

// Contains reports whether the given block is entirely inside c.
func (c CIDR) Contains(other CIDR) bool {
	if other.prefix < c.prefix {
		return false
	}
	return other.addr&mask(c.prefix) == c.addr
}

func formatAddr(addr uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", addr>>24, addr>>16&0xff, addr>>8&0xff, addr&0xff)
}
