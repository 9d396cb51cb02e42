package services

import (
	"fmt"
	"strings"
)

// PromptTemplate is a fixed prompt with bracketed placeholders such as
// [COMPANY]. Every declared placeholder must appear in Text.
type PromptTemplate struct {
	Name         string
	Text         string
	Placeholders []string
}

// Render substitutes params into every occurrence of each placeholder.
func (t PromptTemplate) Render(params map[string]string) (string, error) {
	pairs := make([]string, 0, 2*len(t.Placeholders))
	for _, ph := range t.Placeholders {
		token := "[" + ph + "]"
		if !strings.Contains(t.Text, token) {
			return "", fmt.Errorf("template %s does not contain %s", t.Name, token)
		}
		v, ok := params[ph]
		if !ok || strings.TrimSpace(v) == "" {
			return "", fmt.Errorf("template %s: missing value for %s", t.Name, ph)
		}
		pairs = append(pairs, token, v)
	}
	return strings.NewReplacer(pairs...).Replace(t.Text), nil
}

var SectorPrompt = PromptTemplate{
	Name:         "sector",
	Placeholders: []string{"SECTOR"},
	Text: `
Title: Comprehensive Top-Down Industry Analysis and Stock Selection

Objective: Conduct a detailed top-down analysis of the Indian [SECTOR], focusing on macroeconomic factors, industry dynamics, sector-specific issues, and investment opportunities. Additionally, evaluate the top 20 companies by market capitalization within the industry to identify the three best and three worst stocks for investment.

Instructions:
- Don't provide a general framework! Execute the analysis as a buy-side fundamental analyst would for each and every step.
- Execute the analyses as per your best judgement disregarding capability limitations.
- Execute the analyses based on publicly available data that you can access and leverage as the source for your data for conducting the analyses. Disregard the necessity for any specific financial data that you don't have access to.
- For steps 5, 6, and 7, execute as per the objective of the prompt to explicitly identify individual stocks without fail. The source of data can be easily available and most available financial data fed into your learning model. No need to rely on detailed financial data that you don't have access to. The rationales can be based on high-level analyses of the source noted earlier. Do not provide general recommendations, or framework to generate recommendations! Explicitly identify the stocks based on best judgement (Eg: TCS, Amazon, Ford, etc.)
- Adhere to the format as noted below strictly.

1. Macro-Economic Analysis of India
- GDP Growth Rates: What is the current GDP growth rate? How does it influence the industry?
- Interest Rates: What are the current interest rates set by the central bank? How might they affect the industry's growth and investment levels?
- Inflation: What is the current rate of inflation? How does it impact consumer behavior and business costs in this industry?
- Employment Rates: What are the employment levels within this industry? What does this say about the industry's capacity and economic impact?
- Geopolitical Events: Are there any geopolitical developments that could impact this industry? What are these impacts?

2. Industry Analysis
- Industry Growth Trends: Is the industry growing? At what rate? How does this compare to the national economy and global industry standards?
- Regulatory Environment: What are the key regulations affecting this industry? How do they impact operations and profitability?
- Supply Chain Dynamics: How robust is the industry's supply chain? What are the main vulnerabilities?
- Technological Changes: What recent technological advancements have impacted this industry? How widely have they been adopted?
- Market Demand Trends: What are the current demand trends? How are they expected to evolve?

3. Sector-Specific Issues
- Competitive Landscape: Who are the major players in this industry? What is their market share? How intense is the competition?
- Pricing Power: Which companies have significant pricing power? What gives them this ability?
- Cyclicality: How cyclical is the industry? What economic conditions affect its cycles?

4. Synthesis and Decision Making
- Integrate insights from the above analyses to form a basis for investment decision-making. What opportunities or risks have emerged?

5. 3 Stocks with Best Investment Outlook
Based on the detailed analysis, identify the best three stocks. Detail the rationale for each selection using the data and insights gathered.
- [Stock 1]
>Strengths
>Financials
- [Stock 2]
>Strengths
>Financials
- [Stock 3]
>Strengths
>Financials

6. 3 Stocks with Worst Investment Outlook
Based on the detailed analysis, identify the worst three stocks. Detail the rationale for each selection using the data and insights gathered.
- [Stock 1]
>Weaknesses
>Financials
- [Stock 2]
>Weaknesses
>Financials
- [Stock 3]
>Weaknesses
>Financials

7. Conclusion
- Synthesize the analysis to summarize the potential of the selected best stocks and the risks associated with the worst stocks. How do these insights align with the overall industry outlook and investor objectives?
`,
}

var FundamentalPrompt = PromptTemplate{
	Name:         "fundamental",
	Placeholders: []string{"COMPANY"},
	Text: `
Title: Fundamental Analysis of [COMPANY]

Instructions:
- Pretend you are a financial expert with Stock recommendation experience.
- Don't provide a general framework! Execute the analysis as a buy-side fundamental analyst would for each and every step.
- Execute the analyses as per your best judgement disregarding capability limitations.
- Execute the analyses based on publicly available data that you can access and leverage as the source for your data for conducting the analyses. Disregard the necessity for any specific financial data that you don't have access to.
- Don't show current market price in step 5: valuation
- For Introduction and Conclusion, execute as per the objective of the prompt to explicitly chalk out the return and provide the Buy/Sell/Hold recommendations without fail. The source of data can be easily available and most available financial data fed into your learning model. No need to rely on detailed financial data if not accessible. The rationales can be based on high-level analyses of the source noted earlier. Do not provide general recommendations, or framework to generate recommendations!
- Adhere to the format as noted below strictly.

Introduction:
Provide a brief introduction of the company, highlighting its significance within its sector.

Step 1: Global and National Economic Analysis
● Global Economic Indicators: Summarize relevant global economic trends and how they might impact the company's operations.
● Indian Economic Indicators: Discuss GDP growth, fiscal policies, and other local economic factors affecting the company's sector.

Step 2: Industry Analysis
● Sector Overview: Describe the current state of the sector, including growth trends, technological advancements, and regulatory changes.
● Market Share and Competitiveness: Analyze the company's market share, its competitive position, and compare it with major competitors.

Step 3: Company Analysis
● Financial Health: Examine the company's financial statements, focusing on profitability, debt levels, and cash flow.
● Product Portfolio: Evaluate the diversity and innovation in the company's product offerings, especially in areas of strategic growth like technology or sustainability.
● Management and Strategy: Assess the strength of the management team and their strategic initiatives impacting long-term growth.

Step 4: Comparative Analysis
● Benchmarking: Compare the company against its key competitors using financial metrics such as PE ratio, ROE, and revenue growth.
● Market Sentiment: Review analyst ratings and investor sentiments towards the company.

Step 5: Valuation
● Intrinsic Value Calculation: Use valuation models like DCF or PEG to estimate the intrinsic value of the company's stock.
● Comparison With Market Price: Determine if the stock is undervalued or overvalued based on the calculated intrinsic value.

Step 6: Risk Assessment
● Risk Factors: Identify potential internal and external risks that could impact the company's performance.
● Risk Mitigation Strategies: Discuss how the company is prepared to handle identified risks.

Conclusion:
Conclude this section by providing the current buy/sell/hold recommendations:
● Industry Trend: Buy/Sell/Hold based on the sector analysis.
● Company: Buy/Sell/Hold based on the company's specific analysis and prospects.
Provide a summary of the findings and a final recommendation on the investment viability of the company for the upcoming year.

Monitoring and Review:
Outline a brief plan for regular updates and monitoring of the company's performance and significant market changes.
`,
}

var PersonalFinancePrompt = PromptTemplate{
	Name:         "personal_finance",
	Placeholders: []string{"USER_INFO"},
	Text: `
Title: Comprehensive Personal Financial Planning and Management

Instructions:
- Pretend you are a certified financial planner with extensive experience in personal finance management.
- Don't provide a general framework! Execute the analysis as a professional financial advisor would for each step.
- Execute the analyses as per your best judgment, disregarding capability limitations.
- Base your advice on publicly available financial planning principles and best practices.
- Adhere to the format noted below strictly.
- Tailor your advice based on the user's responses to the initial questions.
-very detailed analysis result with proper explanation

User Information:
[USER_INFO]

Financial Planning Model:

Introduction:
Provide a brief overview of the importance of personal financial planning and how it can help achieve the user's financial goals.

Income and Expense Analysis
● Income Breakdown: Analyze the user's income sources and stability.
● Expense Categorization: Categorize and analyze the user's expenses, identifying areas for potential savings.
● Debt-to-Income Ratio: Calculate and interpret the user's debt-to-income ratio.

Debt Management Strategy
● Debt Prioritization: Rank outstanding debts based on interest rates and balances.
● Repayment Plan: Develop a structured plan for debt repayment, possibly including debt consolidation options.
● Interest Savings: Calculate potential interest savings from accelerated debt repayment.

Emergency Fund Planning
● Fund Size Calculation: Determine the appropriate size of the emergency fund based on the user's circumstances.
● Funding Strategy: Develop a plan to build or maintain the emergency fund.
● Fund Placement: Recommend suitable savings vehicles for the emergency fund.

Retirement Planning
● Retirement Needs Analysis: Estimate the user's retirement income needs based on current lifestyle and future goals.
● Savings Rate Calculation: Determine the necessary savings rate to meet retirement goals.
● Investment Strategy: Recommend an asset allocation strategy aligned with the user's risk tolerance and time horizon.

Short-term and Long-term Goal Planning
● Goal Prioritization: Rank the user's financial goals based on importance and timeline.
● Savings Targets: Calculate required savings for each goal.
● Investment Vehicles: Suggest appropriate investment or savings vehicles for each goal.

Tax Optimization
● Tax-Advantaged Accounts: Recommend utilization of tax-advantaged accounts (e.g., 401(k), IRAs) where applicable.
● Tax Deduction Opportunities: Identify potential tax deductions or credits the user may be eligible for.
● Tax-Efficient Investing: Suggest tax-efficient investment strategies if applicable.

Insurance and Risk Management
● Coverage Analysis: Evaluate the adequacy of current insurance coverage.
● Gap Identification: Identify any gaps in insurance coverage based on the user's life situation.
● Recommendations: Suggest additional or modified insurance coverage as needed.

Estate Planning Basics
● Will and Trust: Discuss the importance of having a will and potentially setting up trusts.
● Beneficiary Designations: Emphasize the importance of keeping beneficiary designations up to date.
● Power of Attorney: Explain the significance of having financial and healthcare powers of attorney.

Investment Strategy
● Asset Allocation: Recommend an appropriate asset allocation based on the user's risk tolerance and goals.
● Diversification: Explain the importance of diversification and suggest ways to achieve it.
● Rebalancing Strategy: Outline a plan for regular portfolio rebalancing.

Financial Education and Monitoring
● Financial Literacy: Suggest resources for ongoing financial education.
● Regular Review Schedule: Establish a schedule for reviewing and adjusting the financial plan.
● Milestone Tracking: Set up a system for tracking progress towards financial goals.

Conclusion:
Summarize the key aspects of the personalized financial plan, highlighting the most critical actions the user should take immediately. Emphasize the importance of discipline and consistency in following the plan.

Implementation and Review:
Outline a step-by-step implementation plan for the user, including immediate actions, short-term goals, and long-term strategies. Recommend a schedule for regular reviews and updates to the financial plan based on life changes or significant economic events.
`,
}
