package constant

import _ "embed"

// Logo is printed by the version command.
//
//go:embed ascii.txt
var Logo string
