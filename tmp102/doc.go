// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.
//
// tmp102 provides read-only access to a Texas Instruments TMP102 I2C
// temperature sensor.
//
// Every query issues exactly one read of the temperature register. Reads
// against the same Dev are serialized; nothing is cached between calls.
// The register word is decoded by Decode, which is usable on its own for
// values obtained elsewhere.
//
// Range: -40°C - 125°C
//
// Accuracy: +/- 0.5°C
//
// Resolution: 0.0625°C
//
// For detailed information, refer to the [datasheet].
//
// [datasheet]: https://www.ti.com/lit/ds/symlink/tmp102.pdf
package tmp102
