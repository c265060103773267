// Copyright 2022 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package version

import (
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithCommit(t *testing.T) {
	require.Equal(t, WithMeta, WithCommit("", ""))
	require.Equal(t, WithMeta+"-9b68875d-20241019", WithCommit("9b68875d68b409eb2efdb68a4b623aaacc10a5b6", "20241019"))
	require.True(t, strings.HasPrefix(Version(), Semantic))
}

func TestBuildInfoVCS(t *testing.T) {
	info := &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: "9b68875d68b409eb2efdb68a4b623aaacc10a5b6"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "vcs.time", Value: "2024-10-19T08:30:00Z"},
	}}
	vcs, ok := buildInfoVCS(info)
	require.True(t, ok)
	require.Equal(t, VCSInfo{Commit: "9b68875d68b409eb2efdb68a4b623aaacc10a5b6", Date: "20241019", Dirty: true}, vcs)

	_, ok = buildInfoVCS(&debug.BuildInfo{})
	require.False(t, ok)
}
