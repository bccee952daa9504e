package injector_test

import (
	"reflect"
	"testing"

	"github.com/junioryono/injector"
)

type benchDep1 struct{ Value int }
type benchDep2 struct{ Value int }
type benchDep3 struct{ Value int }

type benchService struct {
	Dep1 *benchDep1
	Dep2 *benchDep2
	Dep3 *benchDep3
}

func newBenchService0() *benchService { return &benchService{} }

func newBenchService1(d1 *benchDep1) *benchService {
	return &benchService{Dep1: d1}
}

func newBenchService3(d1 *benchDep1, d2 *benchDep2, d3 *benchDep3) *benchService {
	return &benchService{Dep1: d1, Dep2: d2, Dep3: d3}
}

func newBenchContainer(b *testing.B, lifetime injector.Lifetime) *injector.Container {
	b.Helper()

	c := injector.New()
	b.Cleanup(func() { c.Close() })

	for _, err := range []error{
		injector.Install[*benchDep1](c, injector.Singleton),
		injector.Install[*benchDep2](c, injector.Singleton),
		injector.Install[*benchDep3](c, injector.Singleton),
		injector.Install[*benchService](c, lifetime,
			injector.WithConstructor(newBenchService0, newBenchService1, newBenchService3)),
	} {
		if err != nil {
			b.Fatal(err)
		}
	}

	return c
}

func BenchmarkGet(b *testing.B) {
	b.Run("Singleton", func(b *testing.B) {
		c := newBenchContainer(b, injector.Singleton)
		injector.MustGet[*benchService](c)

		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = injector.MustGet[*benchService](c)
		}
	})

	b.Run("Transient", func(b *testing.B) {
		c := newBenchContainer(b, injector.Transient)

		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = injector.MustGet[*benchService](c)
		}
	})

	b.Run("Parallel", func(b *testing.B) {
		c := newBenchContainer(b, injector.Singleton)
		injector.MustGet[*benchService](c)

		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				_ = injector.MustGet[*benchService](c)
			}
		})
	})
}

func BenchmarkResolve(b *testing.B) {
	c := newBenchContainer(b, injector.Singleton)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := injector.Resolve[*benchService](c); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkInstall(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c := injector.New()
		_ = injector.Install[*benchService](c, injector.Singleton,
			injector.WithConstructor(newBenchService0, newBenchService1, newBenchService3))
		c.Close()
	}
}

func BenchmarkIdentity(b *testing.B) {
	t := reflect.TypeOf((*benchService)(nil))

	for _, id := range []injector.Identifier{
		injector.RuntimeIdentity,
		injector.HashedIdentity,
		injector.WideHashedIdentity,
	} {
		b.Run(id.Name(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = id.Identify(t)
			}
		})
	}
}
