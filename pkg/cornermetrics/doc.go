/*
Package cornermetrics detects corner keypoints in single-channel intensity
images. It estimates Gaussian-derivative gradients, builds a windowed
structure tensor per pixel, reduces the tensor to a scalar cornerness
response under one of three interchangeable metrics (Harris, harmonic mean,
minimum eigenvalue), and extracts strong, locally-maximal response points.

Two Mat backends are available: the default wraps OpenCV through gocv, and
the purego (or js) build tag selects a pure Go implementation with
identical semantics.
*/
package cornermetrics
