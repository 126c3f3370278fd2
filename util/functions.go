package util

import (
	"log"
	"runtime"
)

func Max(a, b int) int {
	if a < b {
		return b
	}
	return a
}

func Min(a, b int) int {
	if a > b {
		return b
	}
	return a
}

// Suffix returns the last n bytes of s, or s if it is shorter
func Suffix(s string, n int) string {
	return s[Max(len(s)-n, 0):]
}

func LogMemory() {
	s := &runtime.MemStats{}
	runtime.ReadMemStats(s)
	log.Println("*** Memory Info ***")
	log.Println("Bytes Allocated InUse:\t", s.Alloc)
	log.Println("Mallocs:\t\t", s.Mallocs)
	log.Println("Heap Objects:\t\t", s.HeapObjects)
	log.Println("*** ***")
}
