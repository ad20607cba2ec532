// Copyright 2025 Sonic Labs
// This file is part of Suppress, an epidemic suppression model
//
// Suppress is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Suppress is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Suppress. If not, see <http://www.gnu.org/licenses/>.

package scenario

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"
	"math"

	"github.com/0xsoniclabs/suppress/distribution"
	"golang.org/x/crypto/sha3"
)

// Fingerprint returns a hex digest identifying the scenario together with
// any additional run parameters. Equal inputs always give equal digests.
func (s *Scenario) Fingerprint(extra ...any) string {
	h := sha3.New256()
	writeFloats(h, float64(s.p.Grid.UnitsPerDay), float64(s.p.Grid.HorizonDays), s.p.StartTime)
	writeFloats(h, s.p.SeverityPriors...)
	for g := range s.p.SeverityPriors {
		writeDistribution(h, s.p.Baseline[g])
		writeSchedule(h, s.p.SymptomSensitivityApp[g])
		writeSchedule(h, s.p.SymptomSensitivityNoApp[g])
	}
	writeDistribution(h, s.p.SymptomOnset)
	writeSchedule(h, s.p.ContactSensitivityApp)
	writeSchedule(h, s.p.ContactSensitivityNoApp)
	writeSchedule(h, s.p.Isolation)
	writeSchedule(h, s.p.AppAdoption)
	writeDistribution(h, s.p.DelayApp)
	writeDistribution(h, s.p.DelayNoApp)
	for _, e := range extra {
		fmt.Fprintf(h, "|%v", e)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeFloats(h hash.Hash, values ...float64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(len(values)))
	h.Write(buf[:])
	for _, v := range values {
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
}

func writeDistribution(h hash.Hash, d *distribution.Distribution) {
	writeFloats(h, float64(d.Start()), float64(d.Horizon()))
	writeFloats(h, d.Values()...)
}

func writeSchedule(h hash.Hash, s Schedule) {
	for _, step := range s.steps {
		writeFloats(h, step.From, step.Value)
	}
	writeFloats(h)
}
