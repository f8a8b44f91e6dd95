// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws builds the AWS service clients used by awsmcp. Config loading
// follows the SDK's default chain unless static keys, a profile or a region
// are supplied as options. Each service is exposed through a narrow interface
// so operations can be exercised against test doubles.
package aws
