// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package xcdecode decodes a telecom change-log file's schema-less,
// length-delimited change payloads against a pair of XML schema documents
// loaded earlier in the stream.
//
// The wire format is self-describing in shape (wire type plus field
// number) but not in type; every disambiguation of integer vs. double vs.
// enum vs. string vs. nested message requires a lookup into the schema
// tree. Build a [Schema] from two parsed documents with [NewSchema], then
// decode either a single change with [Schema.DecodeMessage] or a whole
// change set concurrently with a [Dispatcher].
package xcdecode
