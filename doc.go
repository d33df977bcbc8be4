// Package seqnet provides a small recurrent sequence model for per-timestep
// binary risk prediction over padded clinical time series.
//
// The model is a fixed pipeline: a masking stage that skips padded timesteps,
// a single LSTM layer with independently configured input and recurrent
// dropout, and a time-distributed dense projection with a sigmoid activation
// producing one probability per timestep. Only the numeric plumbing is
// pluggable; the graph itself is not.
//
// Building Models
//
// A Model is constructed with its input and hidden widths, then configured
// through chained setters. Configuration errors accumulate and are reported
// by Compile:
//
//		m := seqnet.New(265, 128).
//			MaskValue(0).
//			Dropout(0.5).
//			RecurrentDropout(0.5).
//			Seed(42)
//
//		if err := m.Compile(costfuncs.BinaryCrossEntropy(), optimizers.Adam()); err != nil {
//			return err
//		}
//
// Cost functions can be found in the subpackage "costfuncs", optimizers in
// "optimizers", and so forth, for weight initializers and learning-rate
// schedules.
//
// Training and Inference
//
// Training uses the type TrainArgs as a proxy for the optional arguments
// available in other languages:
//
//		trace, err := m.Fit(seqnet.TrainArgs{
//			Data:         sup,
//			BatchSize:    128,
//			Epochs:       5,
//			LearningRate: hyperparams.Constant(1e-3),
//		})
//
// Fit returns the per-epoch loss trace. Sequences are supplied through the
// SequenceSupplier interface; the subpackage "dataset" adapts NumPy tensor
// pairs to it. Inference is done with Predict or PredictSequence, with
// dropout disabled.
package seqnet
