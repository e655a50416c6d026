package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createParseQueryTool returns the parse_query tool definition
func createParseQueryTool() mcp.Tool {
	return mcp.NewTool("parse_query",
		mcp.WithDescription("Parse a natural language lead search into structured criteria (roles, locations, company size, industries, seniority) without starting a job"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Natural language description of the leads to find, e.g. 'CTOs at fintech startups in New York'"),
		),
		mcp.WithString("llm_provider",
			mcp.Description("LLM provider to parse with: openai, claude, gemini (default: configured provider)"),
		),
	)
}

// createStartLeadSearchTool returns the start_lead_search tool definition
func createStartLeadSearchTool() mcp.Tool {
	return mcp.NewTool("start_lead_search",
		mcp.WithDescription("Start a LinkedIn lead generation job from a natural language query. Requires LinkedIn credentials and an LLM API key to be configured. Runs in the background; poll get_lead_job for progress."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Natural language description of the leads to find"),
		),
		mcp.WithString("llm_provider",
			mcp.Description("LLM provider to parse with: openai, claude, gemini (default: configured provider)"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum profiles to collect (default: 25, max: 200)"),
		),
	)
}

// createGetLeadJobTool returns the get_lead_job tool definition
func createGetLeadJobTool() mcp.Tool {
	return mcp.NewTool("get_lead_job",
		mcp.WithDescription("Retrieve a lead generation job by ID, including status and profile count"),
		mcp.WithString("job_id",
			mcp.Required(),
			mcp.Description("Job ID (format: job_{uuid})"),
		),
	)
}

// createListLeadJobsTool returns the list_lead_jobs tool definition
func createListLeadJobsTool() mcp.Tool {
	return mcp.NewTool("list_lead_jobs",
		mcp.WithDescription("List recent lead generation jobs, newest first"),
		mcp.WithNumber("limit",
			mcp.Description("Max jobs to return (default: 20, max: 100)"),
		),
	)
}

// createGetLeadProfilesTool returns the get_lead_profiles tool definition
func createGetLeadProfilesTool() mcp.Tool {
	return mcp.NewTool("get_lead_profiles",
		mcp.WithDescription("List the profiles collected by a completed job, sorted by engagement score"),
		mcp.WithString("job_id",
			mcp.Required(),
			mcp.Description("Job ID (format: job_{uuid})"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max profiles to return (default: 25)"),
		),
	)
}
