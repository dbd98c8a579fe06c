// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

package aws

import (
	"context"
	"testing"
)

func TestMockSSMClientWithoutFunctions(t *testing.T) {
	mock := &MockSSMClient{}
	if _, err := mock.GetParameter(context.Background(), nil); err == nil {
		t.Error("MockSSMClient.GetParameter() error = nil, want error")
	}
}
