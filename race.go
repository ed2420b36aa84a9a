// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package itc

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent MPSC/SPSC cases, whose fence-based
// payload publication triggers false positives under the detector.
const RaceEnabled = true
