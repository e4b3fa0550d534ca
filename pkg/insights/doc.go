// Package insights drives the neural analyses over a finished referral
// graph: engagement risk scoring, signup forecasting, contact pattern
// recognition, structural anomaly detection, and synthetic profile
// generation. Each analysis builds fresh model instances, so results
// carry no state between runs and exact scores vary run to run while
// the structural shape of every insight stays fixed.
package insights
