package go_symcrypt

import (
	"sync"
	"testing"
)

func TestInMemoryMetrics_TransformCounters(t *testing.T) {
	metrics := NewInMemoryMetrics()

	metrics.IncrementTransform("DES", Encrypt)
	metrics.IncrementTransform("DES", Decrypt)
	metrics.IncrementTransform("AES", Encrypt)

	if got := metrics.Encryptors(); got != 2 {
		t.Errorf("Encryptors() = %d, want 2", got)
	}
	if got := metrics.Decryptors(); got != 1 {
		t.Errorf("Decryptors() = %d, want 1", got)
	}
	if got := metrics.Transforms("DES"); got != 2 {
		t.Errorf("Transforms(DES) = %d, want 2", got)
	}
	if got := metrics.Transforms("RC2"); got != 0 {
		t.Errorf("Transforms(RC2) = %d, want 0", got)
	}
}

func TestInMemoryMetrics_Errors(t *testing.T) {
	metrics := NewInMemoryMetrics()

	metrics.IncrementError("AES", "TransformFinalBlock")
	metrics.IncrementError("AES", "TransformFinalBlock")
	metrics.IncrementError("DES", "TransformBlock")

	if got := metrics.Errors("AES", "TransformFinalBlock"); got != 2 {
		t.Errorf("Errors() = %d, want 2", got)
	}

	all := metrics.AllErrors()
	if len(all) != 2 {
		t.Fatalf("AllErrors() has %d entries, want 2", len(all))
	}
	// The returned map is a copy.
	all["DES.TransformBlock"] = 99
	if got := metrics.Errors("DES", "TransformBlock"); got != 1 {
		t.Errorf("Errors() after editing copy = %d, want 1", got)
	}
}

func TestInMemoryMetrics_ZeroValue(t *testing.T) {
	var metrics InMemoryMetrics

	metrics.IncrementTransform("DES", Encrypt)
	metrics.AddBytesTransformed("DES", 8)
	metrics.IncrementError("DES", "TransformFinalBlock")

	if got := metrics.Transforms("DES"); got != 1 {
		t.Errorf("Transforms(DES) = %d, want 1", got)
	}
	if got := metrics.BytesTransformedBy("DES"); got != 8 {
		t.Errorf("BytesTransformedBy(DES) = %d, want 8", got)
	}
	if got := len(metrics.AllErrors()); got != 1 {
		t.Errorf("AllErrors() has %d entries, want 1", got)
	}
}

func TestInMemoryMetrics_BytesByAlgorithm(t *testing.T) {
	metrics := NewInMemoryMetrics()

	metrics.AddBytesTransformed("AES", 32)
	metrics.AddBytesTransformed("AES", 16)
	metrics.AddBytesTransformed("RC2", 8)

	if got := metrics.BytesTransformed(); got != 56 {
		t.Errorf("BytesTransformed() = %d, want 56", got)
	}
	if got := metrics.BytesTransformedBy("AES"); got != 48 {
		t.Errorf("BytesTransformedBy(AES) = %d, want 48", got)
	}
	if got := metrics.BytesTransformedBy("RC2"); got != 8 {
		t.Errorf("BytesTransformedBy(RC2) = %d, want 8", got)
	}
	if got := metrics.BytesTransformedBy("DES"); got != 0 {
		t.Errorf("BytesTransformedBy(DES) = %d, want 0", got)
	}
}

func TestInMemoryMetrics_Reset(t *testing.T) {
	metrics := NewInMemoryMetrics()
	metrics.IncrementTransform("RC2", Encrypt)
	metrics.AddBytesTransformed("RC2", 64)
	metrics.IncrementError("RC2", "TransformBlock")

	metrics.Reset()

	if metrics.Encryptors() != 0 || metrics.BytesTransformed() != 0 {
		t.Error("counters not cleared by Reset")
	}
	if metrics.Transforms("RC2") != 0 || metrics.BytesTransformedBy("RC2") != 0 || len(metrics.AllErrors()) != 0 {
		t.Error("maps not cleared by Reset")
	}
}

func TestInMemoryMetrics_Concurrent(t *testing.T) {
	metrics := NewInMemoryMetrics()
	const workers, iterations = 8, 500

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				metrics.IncrementTransform("AES", Encrypt)
				metrics.AddBytesTransformed("AES", 16)
				metrics.IncrementError("AES", "TransformBlock")
				_ = metrics.AllErrors()
			}
		}()
	}
	wg.Wait()

	if got := metrics.Encryptors(); got != workers*iterations {
		t.Errorf("Encryptors() = %d, want %d", got, workers*iterations)
	}
	if got := metrics.BytesTransformed(); got != workers*iterations*16 {
		t.Errorf("BytesTransformed() = %d, want %d", got, workers*iterations*16)
	}
	if got := metrics.Errors("AES", "TransformBlock"); got != workers*iterations {
		t.Errorf("Errors() = %d, want %d", got, workers*iterations)
	}
}

// TestMetricsAttachedToAlgorithm drives a real encryption through a collector.
func TestMetricsAttachedToAlgorithm(t *testing.T) {
	metrics := NewInMemoryMetrics()
	alg := NewAES()
	alg.SetMetrics(metrics)

	ct, err := alg.Encrypt(make([]byte, 20))
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	if _, err := alg.Decrypt(ct); err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}

	if metrics.Encryptors() != 1 || metrics.Decryptors() != 1 {
		t.Errorf("got %d encryptors and %d decryptors, want 1 and 1", metrics.Encryptors(), metrics.Decryptors())
	}
	if metrics.BytesTransformed() == 0 {
		t.Error("BytesTransformed() = 0, want > 0")
	}
}

func TestNoopMetrics(t *testing.T) {
	var m MetricsCollector = noopMetrics{}
	m.IncrementTransform("DES", Encrypt)
	m.AddBytesTransformed("DES", 8)
	m.IncrementError("DES", "TransformBlock")
}
