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

// Package header provides the common report header embedded in serialized
// output documents.
//
// The Header identifies what a document is (Kind), which tool version
// produced it, the unique run that produced it (RunID), and when (Created,
// always UTC). Optional free-form metadata can be attached for context such
// as hostname or distribution.
//
// # Usage
//
// Create a header for a verification report:
//
//	h := header.New(header.KindVerificationResult, "1.0.0",
//	    header.WithMetadata("host", "lab-01"))
//
// Headers serialize consistently to JSON and YAML:
//
//	{
//	  "kind": "VerificationResult",
//	  "version": "1.0.0",
//	  "runID": "5f0c2e4e-...",
//	  "created": "2025-08-29T10:30:00Z"
//	}
package header
