// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

const (
	IniName            = ".edgeaddons.ini"
	CurrentEnvironment = "current_environment"
	UpdatedEnvKey      = "updated_environment"

	EdgeEndpoint       = "edge_api_endpoint"
	EdgeProductId      = "edge_product_id"
	EdgeClientId       = "edge_client_id"
	EdgeApiKey         = "edge_api_key"
	EdgeClientSecret   = "edge_client_secret"
	EdgeAccessTokenUrl = "edge_access_token_url"
	EdgeScope          = "edge_scope"
	EdgeAuthMethod     = "edge_auth_method"
	EdgeUploadOnly     = "edge_upload_only"
	EdgeCacheToken     = "edge_cache_token"
	EdgeEscapeNotes    = "edge_escape_notes"
	EdgeRetryCount     = "edge_retry_count"
	EdgePollInterval   = "edge_poll_interval"

	AwsAccessKeyId     = "aws_access_key_id"
	AwsSecretAccessKey = "aws_secret_access_key"
	AwsSessionToken    = "aws_session_token"
	AwsRegion          = "aws_region"
	AwsEndpointUrl     = "aws_endpoint_url"
)
