package metricsapi

import "context"

// Configuration fetches the metrics API configuration, unwrapping the result envelope
func (c *Client) Configuration(ctx context.Context) (Configuration, error) {
	resp, err := Fetch[ConfigurationResponse](ctx, c, PathConfiguration, nil)
	if err != nil {
		return Configuration{}, err
	}
	return resp.Result, nil
}

// Ping checks that the metrics API answers the configuration endpoint
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Configuration(ctx)
	return err
}
