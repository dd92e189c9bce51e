package go_symcrypt

// CryptoTransform is an incremental encrypt, decrypt or encode session.
//
// TransformBlock may be called any number of times with whole multiples of
// InputBlockSize; TransformFinalBlock consumes the tail and, for one-shot
// transforms (CanReuseTransform false), ends the session.
//
// Implementations are not safe for concurrent use.
type CryptoTransform interface {
	InputBlockSize() int
	OutputBlockSize() int
	CanTransformMultipleBlocks() bool
	CanReuseTransform() bool
	TransformBlock(input []byte, inputOffset, inputCount int, output []byte, outputOffset int) (int, error)
	TransformFinalBlock(input []byte, inputOffset, inputCount int) ([]byte, error)
	Clear()
}

// SymmetricTransform is the CryptoTransform returned by CreateEncryptor and
// CreateDecryptor. It owns a value copy of the key schedule, IV, mode and
// padding taken at creation; later changes to the SymmetricAlgorithm do not
// reach it.
//
// Decryptors with PKCS7, ANSIX923 or ISO10126 padding withhold the last
// decrypted segment of every TransformBlock call, because it may turn out to
// be the padded one. It is released by the next call or by
// TransformFinalBlock.
type SymmetricTransform struct {
	algorithm string
	dir       Direction
	mode      CipherMode
	padding   paddingCodec
	engine    *modeEngine
	segment   int
	held      []byte
	hasHeld   bool
	state     transformState
	metrics   MetricsCollector
}

// newSymmetricTransform assumes key, iv and sizes were already validated.
func newSymmetricTransform(cfg transformConfig) (*SymmetricTransform, error) {
	block, err := cfg.algorithm.NewCipher(cfg.key, cfg.blockBits)
	if err != nil {
		return nil, err
	}
	engine, err := newModeEngine(block, cfg.mode, cfg.dir, cfg.iv, cfg.feedbackBits/8)
	if err != nil {
		return nil, err
	}
	segment := block.BlockSize()
	if cfg.mode.isStream() && cfg.algorithm.SegmentedFeedback() {
		segment = cfg.feedbackBits / 8
	}
	t := &SymmetricTransform{
		algorithm: cfg.algorithm.Name(),
		dir:       cfg.dir,
		mode:      cfg.mode,
		padding:   newPaddingCodec(cfg.padding, cfg.rng),
		engine:    engine,
		segment:   segment,
		held:      make([]byte, segment),
		metrics:   cfg.metrics,
	}
	if t.metrics == nil {
		t.metrics = noopMetrics{}
	}
	t.metrics.IncrementTransform(t.algorithm, t.dir)
	logInstance.WithField("algorithm", t.algorithm).
		WithField("mode", t.mode.String()).
		WithField("padding", cfg.padding.String()).
		WithField("segment", segment).
		Debugf("created %s transform", t.dir)
	return t, nil
}

// InputBlockSize is the segment size in bytes: the cipher block for ECB and
// CBC, FeedbackSize/8 for CFB and OFB on algorithms with segmented feedback.
func (t *SymmetricTransform) InputBlockSize() int { return t.segment }

// OutputBlockSize equals InputBlockSize.
func (t *SymmetricTransform) OutputBlockSize() int { return t.segment }

func (t *SymmetricTransform) CanTransformMultipleBlocks() bool { return true }

// CanReuseTransform is false: TransformFinalBlock ends the session.
func (t *SymmetricTransform) CanReuseTransform() bool { return false }

// Direction reports whether t encrypts or decrypts.
func (t *SymmetricTransform) Direction() Direction { return t.dir }

// TransformBlock transforms inputCount bytes of input starting at
// inputOffset, writes the result to output at outputOffset and returns the
// number of bytes written. inputCount must be a multiple of InputBlockSize.
func (t *SymmetricTransform) TransformBlock(input []byte, inputOffset, inputCount int, output []byte, outputOffset int) (int, error) {
	if err := t.checkActive(); err != nil {
		return 0, t.fail("TransformBlock", err)
	}
	if err := checkInput(input, inputOffset, inputCount); err != nil {
		return 0, t.fail("TransformBlock", err)
	}
	if inputCount%t.segment != 0 {
		return 0, t.fail("TransformBlock", argError(ErrInvalidInputLength, "inputCount"))
	}
	withhold := t.dir == Decrypt && t.padding.mode.removable()
	written := inputCount
	if withhold && inputCount > 0 {
		written = inputCount - t.segment
		if t.hasHeld {
			written += t.segment
		}
	}
	if err := checkOutput(output, outputOffset, written); err != nil {
		return 0, t.fail("TransformBlock", err)
	}
	if inputCount == 0 {
		return 0, nil
	}

	src := input[inputOffset : inputOffset+inputCount]
	if !withhold {
		t.engine.process(output[outputOffset:outputOffset+inputCount], src)
		t.metrics.AddBytesTransformed(t.algorithm, uint64(inputCount))
		return inputCount, nil
	}

	plain := make([]byte, inputCount)
	t.engine.process(plain, src)
	dst := output[outputOffset:]
	n := 0
	if t.hasHeld {
		n += copy(dst, t.held)
	}
	n += copy(dst[n:], plain[:inputCount-t.segment])
	copy(t.held, plain[inputCount-t.segment:])
	t.hasHeld = true
	clear(plain)
	t.metrics.AddBytesTransformed(t.algorithm, uint64(inputCount))
	return n, nil
}

// TransformFinalBlock transforms the remaining input and ends the session.
// Encryption pads the tail; decryption requires segment-aligned input and
// strips the padding. On error the transform stays usable and unchanged.
func (t *SymmetricTransform) TransformFinalBlock(input []byte, inputOffset, inputCount int) ([]byte, error) {
	if err := t.checkActive(); err != nil {
		return nil, t.fail("TransformFinalBlock", err)
	}
	if err := checkInput(input, inputOffset, inputCount); err != nil {
		return nil, t.fail("TransformFinalBlock", err)
	}
	src := input[inputOffset : inputOffset+inputCount]

	var (
		out []byte
		err error
	)
	if t.dir == Encrypt {
		out, err = t.finalEncrypt(src)
	} else {
		out, err = t.finalDecrypt(src)
	}
	if err != nil {
		return nil, t.fail("TransformFinalBlock", err)
	}
	t.metrics.AddBytesTransformed(t.algorithm, uint64(inputCount))
	t.finish(stateFinalized)
	logInstance.WithField("algorithm", t.algorithm).
		WithField("bytes", len(out)).
		Debugf("finalized %s transform", t.dir)
	return out, nil
}

func (t *SymmetricTransform) finalEncrypt(src []byte) ([]byte, error) {
	padded, err := t.padding.pad(src, t.segment)
	if err != nil {
		return nil, err
	}
	t.engine.process(padded, padded)
	return padded, nil
}

func (t *SymmetricTransform) finalDecrypt(src []byte) ([]byte, error) {
	if len(src)%t.segment != 0 {
		return nil, t.padding.lengthError(len(src), t.segment)
	}
	saved := append([]byte(nil), t.engine.register...)

	out := make([]byte, 0, len(src)+t.segment)
	if t.hasHeld {
		out = append(out, t.held...)
	}
	plain := make([]byte, len(src))
	t.engine.process(plain, src)
	out = append(out, plain...)
	clear(plain)

	result, err := t.padding.unpad(out, t.segment)
	if err != nil {
		copy(t.engine.register, saved)
		clear(out)
		return nil, err
	}
	return result, nil
}

// Clear wipes the chaining state and disposes the transform.
func (t *SymmetricTransform) Clear() {
	if t.state == stateActive {
		t.finish(stateCleared)
	}
}

func (t *SymmetricTransform) finish(state transformState) {
	t.engine.reset()
	clear(t.held)
	t.hasHeld = false
	t.state = state
}

func (t *SymmetricTransform) checkActive() error {
	if t.state != stateActive {
		return argError(ErrObjectDisposed, t.algorithm)
	}
	return nil
}

func (t *SymmetricTransform) fail(operation string, err error) error {
	t.metrics.IncrementError(t.algorithm, operation)
	return NewTransformError(t.algorithm, operation, err)
}

// checkInput validates a caller buffer window. The comparison is ordered so
// offset+count cannot overflow.
func checkInput(input []byte, offset, count int) error {
	if input == nil {
		return argError(ErrArgumentNull, "input")
	}
	if offset < 0 {
		return argError(ErrArgumentRange, "inputOffset")
	}
	if count < 0 {
		return argError(ErrArgumentRange, "inputCount")
	}
	if offset > len(input)-count {
		return argError(ErrArgumentOverflow, "input")
	}
	return nil
}

func checkOutput(output []byte, offset, count int) error {
	if output == nil {
		return argError(ErrArgumentNull, "output")
	}
	if offset < 0 {
		return argError(ErrArgumentRange, "outputOffset")
	}
	if offset > len(output)-count {
		return argError(ErrArgumentOverflow, "output")
	}
	return nil
}

// TransformBytes runs data through t in one go: the aligned prefix through
// TransformBlock and the tail through TransformFinalBlock.
func TransformBytes(t CryptoTransform, data []byte) ([]byte, error) {
	if data == nil {
		data = []byte{}
	}
	in, outSize := t.InputBlockSize(), t.OutputBlockSize()
	aligned := len(data) - len(data)%in
	out := make([]byte, aligned/in*outSize)
	n, err := t.TransformBlock(data, 0, aligned, out, 0)
	if err != nil {
		return nil, err
	}
	final, err := t.TransformFinalBlock(data, aligned, len(data)-aligned)
	if err != nil {
		return nil, err
	}
	return append(out[:n], final...), nil
}
