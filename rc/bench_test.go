package rc

import (
	"testing"
)

func BenchmarkCloneRelease(b *testing.B) {
	s := Make(payload{id: 1})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := s.Clone()
		c.Release()
	}
	b.StopTimer()
	s.Release()
}

func BenchmarkMakeRelease(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := Make(payload{id: i})
		s.Release()
	}
}

func BenchmarkDowngradeLock(b *testing.B) {
	s := Make(payload{id: 1})
	w := s.Downgrade()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l := w.Lock()
		l.Release()
	}
	b.StopTimer()
	w.Release()
	s.Release()
}
