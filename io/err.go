package io

import (
	"errors"

	"github.com/ezrec/uisa/translate"
)

var f = translate.From

var (
	ErrProgramSize = errors.New(f("program larger than memory"))
)
