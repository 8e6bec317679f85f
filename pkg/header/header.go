// Copyright (c) 2025, KI7MT.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package header

import (
	"time"

	"github.com/google/uuid"
)

// Kind represents the type of an ai-lab report resource.
type Kind string

const (
	// KindVerificationResult identifies a component verification report.
	KindVerificationResult Kind = "VerificationResult"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k *Kind) IsValid() bool {
	switch *k {
	case KindVerificationResult:
		return true
	default:
		return false
	}
}

// Header carries report metadata: kind, producing tool version, a unique
// run ID, and the creation timestamp.
type Header struct {
	// Kind is the type of the report object.
	Kind Kind `json:"kind" yaml:"kind"`

	// Version is the version of the tool that produced the report.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// RunID uniquely identifies the run that produced the report.
	RunID string `json:"runID" yaml:"runID"`

	// Created is the UTC creation time of the report.
	Created time.Time `json:"created" yaml:"created"`

	// Metadata contains optional key-value pairs about the report.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata returns an Option that adds a metadata key-value pair to the
// Header. The Metadata map is initialized if nil.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// New creates a Header for the given kind with a fresh run ID and
// creation timestamp.
func New(kind Kind, version string, opts ...Option) Header {
	h := Header{
		Kind:    kind,
		Version: version,
		RunID:   uuid.NewString(),
		Created: time.Now().UTC(),
	}

	for _, opt := range opts {
		opt(&h)
	}

	return h
}
