package main

import "testing"

func TestValidateOptions(t *testing.T) {
	var testCases = []struct {
		name        string
		input       options
		expectError bool
	}{
		{
			name:  "defaults are valid",
			input: options{logLevel: "info"},
		},
		{
			name:        "invalid log level",
			input:       options{logLevel: "loud"},
			expectError: true,
		},
		{
			name:        "conflicting force flags",
			input:       options{logLevel: "info", forceValidation: true, forceFullTesting: true},
			expectError: true,
		},
		{
			name:  "single force flag",
			input: options{logLevel: "debug", forceValidation: true},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			err := validateOptions(testCase.input)
			if testCase.expectError && err == nil {
				t.Error("expected an error, got none")
			}
			if !testCase.expectError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}
