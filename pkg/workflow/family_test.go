package workflow

import "testing"

func TestFamily(t *testing.T) {
	var testCases = []struct {
		workflow string
		expected string
	}{
		{workflow: "xfs_reflink_4k", expected: "fstests"},
		{workflow: "btrfs_holes", expected: "fstests"},
		{workflow: "ext4_bigalloc", expected: "fstests"},
		{workflow: "tmpfs_1024", expected: "fstests"},
		{workflow: "blktests_nvme", expected: "blktests"},
		{workflow: "blktests", expected: "blktests"},
		{workflow: "selftests_kmod", expected: "selftests"},
		{workflow: "linux_firmware", expected: "selftests"},
		{workflow: "kernel_modules", expected: "selftests"},
		{workflow: "ai_vector_db", expected: "ai"},
		// The *mm* selftests pattern predates mmtests and shadows it.
		{workflow: "mmtests_thpcompact", expected: "selftests"},
		{workflow: "ltp_cve", expected: "ltp"},
		{workflow: "fio-tests", expected: "fio-tests"},
		{workflow: "fio_randwrite", expected: "fio-tests"},
		{workflow: "minio_s3", expected: "minio"},
		{workflow: "unknown_custom", expected: "unknown"},
		{workflow: "standalone", expected: "standalone"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.workflow, func(t *testing.T) {
			if actual := Family(testCase.workflow); actual != testCase.expected {
				t.Errorf("Family(%q) = %q, expected %q", testCase.workflow, actual, testCase.expected)
			}
		})
	}
}
