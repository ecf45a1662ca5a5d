package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Recorder emits operational counters to CloudWatch. Callers treat it as
// best-effort: a failed put must never fail the request that triggered it.
type Recorder struct {
	CW        CloudWatchAPI
	Namespace string
	nowFunc   func() time.Time
}

// NewRecorder returns a Recorder publishing under the given namespace.
func NewRecorder(cw CloudWatchAPI, namespace string) *Recorder {
	return &Recorder{
		CW:        cw,
		Namespace: namespace,
		nowFunc:   time.Now,
	}
}

// Count emits a single count datapoint for the named metric.
func (r *Recorder) Count(ctx context.Context, metric string) error {
	now := r.nowFunc()
	_, err := r.CW.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: &r.Namespace,
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: &metric,
				Timestamp:  &now,
				Unit:       cwtypes.StandardUnitCount,
				Value:      awsFloat64(1),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}

func awsFloat64(f float64) *float64 { return &f }
