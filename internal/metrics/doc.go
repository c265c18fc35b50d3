// Package metrics exposes Prometheus instrumentation for the library server.
//
// Metric families:
//   - store_query_duration_seconds / store_query_errors_total: every gorm
//     statement, labelled by operation and table, via GormPlugin
//   - api_requests_total / api_request_duration_seconds / api_active_requests:
//     HTTP traffic, recorded by the router middleware
//   - tasks_processed_total, loans_overdue, reservations_expired_total:
//     background maintenance
//
// Handler serves the default registry for scraping at /metrics.
package metrics
