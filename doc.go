// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pai holds code to generate and decode the test frames of
// PAICORE chips.
//
// The coordinate algebra of the core grid lives in package coord, the
// 64-bit frame codec in package frame and the generation of test groups
// in package paitest.
package pai // import "github.com/go-lpc/pai"
