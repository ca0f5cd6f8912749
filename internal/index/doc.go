// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package index maps bare shader file names to full paths.
//
// The index is built once by recursively scanning a root directory of an
// afero file system. Sub-directory structure is irrelevant to resolution:
// includes and composite identifiers refer to files by bare name only, so
// bare names are expected to be unique across the whole tree.
package index
